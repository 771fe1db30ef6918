package commands

import (
	"io"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Cat implements the POSIX cat command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/cat.html
func Cat(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "cat [-u] [FILE]...",
		Short: "Concatenate files to standard output.",
	}

	// Output is never buffered so -u is a no-op.
	cmd.Flags().Bool('u', "write bytes without delay")

	return cmd.Run(virtOS, func() int {
		return cmd.RunEachFileOrStdin(virtOS, cmd.Flags().Args(), func(name string, fd io.Reader) error {
			_, err := io.Copy(virtOS.Stdout(), fd)
			return err
		})
	})
}

var _ vos.ProcessFunc = Cat

func init() {
	addCmd("cat", Cat)
}
