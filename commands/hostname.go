package commands

import (
	"fmt"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Hostname implements the Linux command by the same name. Setting the
// hostname requires root so it always fails.
func Hostname(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "hostname [hostname]",
		Short: "Get or set the system's hostname.",
		// Never bail, even if flags are bad.
		NeverBail: true,
	}

	return cmd.Run(virtOS, func() int {
		if len(cmd.Flags().Args()) > 0 {
			fmt.Fprintln(virtOS.Stderr(), "hostname: sethostname: Operation not permitted")
			return 1
		}

		fmt.Fprintln(virtOS.Stdout(), DeviceUname(virtOS.Device()).Nodename)
		return 0
	})
}

var _ vos.ProcessFunc = Hostname

func init() {
	addCmd("hostname", Hostname)
}
