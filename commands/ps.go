package commands

import (
	"fmt"
	"path"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Ps implements the toybox ps command using the device's process table.
//
// Without -A only processes belonging to the caller are shown.
func Ps(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "ps [-Ae]",
		Short: "Report a snapshot of system processes.",

		// Never bail, even if args are bad.
		NeverBail: true,
	}

	showAll := cmd.Flags().Bool('A', "show all processes")
	showEvery := cmd.Flags().Bool('e', "synonym for -A")

	return cmd.Run(virtOS, func() int {
		showEveryone := *showAll || *showEvery
		uid2name := UidResolver(virtOS)
		parent := 0

		w := virtOS.Stdout()
		fmt.Fprintf(w, "%-10s %5s %5s %s\n", "USER", "PID", "PPID", "NAME")
		for _, p := range virtOS.Device().Processes() {
			if p.PID == vos.FirstPID {
				// Everything is forked from the zygote.
				parent = p.PID
			}
			if !showEveryone && p.UID != virtOS.Getuid() {
				continue
			}

			ppid := parent
			if p.PID == parent {
				ppid = 1
			}
			fmt.Fprintf(w, "%-10s %5d %5d %s\n", uid2name(p.UID), p.PID, ppid, path.Base(p.Name))
		}
		return 0
	})
}

var _ vos.ProcessFunc = Ps

func init() {
	addCmd("ps", Ps)
}
