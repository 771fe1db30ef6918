package commands

import (
	"fmt"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Getprop implements the Android getprop command.
//
// With no arguments every property is listed, otherwise the value of the
// named property or DEFAULT is printed.
func Getprop(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "getprop [NAME [DEFAULT]]",
		Short: "Gets an Android system property, or lists them all.",
	}

	return cmd.Run(virtOS, func() int {
		device := virtOS.Device()
		w := virtOS.Stdout()

		args := cmd.Flags().Args()
		switch len(args) {
		case 0:
			for _, name := range device.PropNames() {
				value, _ := device.Getprop(name)
				fmt.Fprintf(w, "[%s]: [%s]\n", name, value)
			}
		case 1, 2:
			value, ok := device.Getprop(args[0])
			if !ok && len(args) == 2 {
				value = args[1]
			}
			fmt.Fprintln(w, value)
		default:
			fmt.Fprintln(virtOS.Stderr(), "getprop: Max 2 arguments")
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Getprop

func init() {
	addCmd("getprop", Getprop)
}
