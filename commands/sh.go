package commands

import (
	"fmt"
	"io"

	"github.com/josephlewis42/fakedevice/core/shell"
	"github.com/josephlewis42/fakedevice/core/vos"
)

// Sh runs a script with the device shell, either the -c argument or a script
// read from stdin.
func Sh(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "sh [-c SCRIPT]",
		Short: "Command interpreter for the device.",
	}

	script := cmd.Flags().String('c', "", "run SCRIPT instead of reading stdin")

	return cmd.Run(virtOS, func() int {
		source := *script
		if source == "" {
			input, err := io.ReadAll(virtOS.Stdin())
			if err != nil {
				cmd.LogProgramError(virtOS, err)
				return 1
			}
			source = string(input)
		}

		code, err := shell.Run(virtOS, source)
		if err != nil {
			fmt.Fprintf(virtOS.Stderr(), "sh: %v\n", err)
		}
		return code
	})
}

var _ vos.ProcessFunc = Sh

func init() {
	addCmd("sh", Sh)
}
