package commands

import (
	"fmt"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Id implements a fake id command, every user is in a group of the same
// name.
func Id(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "id [OPTION]... [USER]",
		Short: "Print user and group information.",

		// Never bail, even if args are bad.
		NeverBail: true,
	}

	printUID := cmd.Flags().Bool('u', "print only the effective user ID")
	printName := cmd.Flags().Bool('n', "print a name instead of a number")

	return cmd.Run(virtOS, func() int {
		uid := virtOS.Getuid()
		if args := cmd.Flags().Args(); len(args) > 0 {
			user, ok := virtOS.Device().LookupUser(args[0])
			if !ok {
				fmt.Fprintf(virtOS.Stderr(), "id: %s: no such user\n", args[0])
				return 1
			}
			uid = user.UID
		}

		name := UidResolver(virtOS)(uid)
		w := virtOS.Stdout()
		switch {
		case *printUID && *printName:
			fmt.Fprintln(w, name)
		case *printUID:
			fmt.Fprintln(w, uid)
		default:
			fmt.Fprintf(w, "uid=%[1]d(%[2]s) gid=%[1]d(%[2]s) groups=%[1]d(%[2]s)\n", uid, name)
		}
		return 0
	})
}

var _ vos.ProcessFunc = Id

func init() {
	addCmd("id", Id)
}
