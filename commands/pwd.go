package commands

import (
	"fmt"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Pwd implements the POSIX pwd command.
func Pwd(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "pwd [-LP]",
		Short: "Print the name of the current working directory.",
	}

	// There are no symlinks on the device so both are the same.
	cmd.Flags().Bool('L', "print the logical path")
	cmd.Flags().Bool('P', "print the physical path")

	return cmd.Run(virtOS, func() int {
		fmt.Fprintln(virtOS.Stdout(), virtOS.Getwd())
		return 0
	})
}

var _ vos.ProcessFunc = Pwd

func init() {
	addCmd("pwd", Pwd)
}
