package commands

import (
	"fmt"
	"path"
	"strings"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Which implements the UNIX which command.
func Which(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "which [COMMAND...]",
		Short: "Locate a command.",
		// Never bail, even if args are bad.
		NeverBail: true,
	}

	return cmd.Run(virtOS, func() int {
		code := 0
		for _, arg := range cmd.Flags().Args() {
			res, ok := lookPath(virtOS, arg)
			if !ok {
				code = 1
				continue
			}
			fmt.Fprintln(virtOS.Stdout(), res)
		}
		return code
	})
}

// lookPath finds the full path of a command by searching PATH.
func lookPath(virtOS vos.VOS, name string) (string, bool) {
	device := virtOS.Device()
	if strings.Contains(name, "/") {
		return name, device.Resolve(name) != nil
	}

	for _, dir := range strings.Split(virtOS.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		full := path.Join(dir, name)
		if device.Resolve(full) != nil {
			return full, true
		}
	}
	return "", false
}

var _ vos.ProcessFunc = Which

func init() {
	addCmd("which", Which)
}
