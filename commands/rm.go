package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Rm implements a POSIX rm command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/rm.html
func Rm(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "rm [-fr] FILE...",
		Short: "Remove files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing files and arguments, never prompt")

	return cmd.Run(virtOS, func() int {
		files := cmd.Flags().Args()
		if len(files) == 0 && !*force {
			fmt.Fprintln(virtOS.Stderr(), "rm: Needs 1 argument")
			return 1
		}

		anyFailed := false
		for _, file := range files {
			stat, statErr := virtOS.Stat(file)
			var err error
			switch {
			case errors.Is(statErr, fs.ErrNotExist):
				if !*force {
					fmt.Fprintf(virtOS.Stderr(), "rm: %s: No such file or directory\n", file)
					anyFailed = true
				}
			case statErr != nil:
				fmt.Fprintf(virtOS.Stderr(), "rm: %s: %v\n", file, statErr)
				anyFailed = true
			case stat.IsDir() && !*recursive:
				fmt.Fprintf(virtOS.Stderr(), "rm: %s: Is a directory\n", file)
				anyFailed = true
			case stat.IsDir():
				err = virtOS.RemoveAll(file)
			default:
				err = virtOS.Remove(file)
			}

			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "rm: %s: %v\n", file, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Rm

func init() {
	addCmd("rm", Rm)
}
