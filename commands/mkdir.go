package commands

import (
	"fmt"
	"os"
	"path"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Mkdir implements a POSIX mkdir command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/mkdir.html
func Mkdir(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [-pv] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")

	return cmd.Run(virtOS, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(virtOS.Stderr(), "mkdir: Needs 1 argument")
			return 1
		}

		var op func(path string, perm os.FileMode) error
		if *makeParents {
			op = virtOS.MkdirAll
		} else {
			op = mkdirStrict(virtOS)
		}

		anyFailed := false
		for _, dir := range directories {
			err := op(dir, 0771)
			switch {
			case err != nil:
				fmt.Fprintf(virtOS.Stderr(), "mkdir: '%s': %s\n", dir, err)
				anyFailed = true

			case *verbose:
				fmt.Fprintf(virtOS.Stdout(), "mkdir: created directory '%s'\n", dir)
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

// mkdirStrict fails if the directory or its parent are in the wrong state,
// in-memory filesystems will otherwise happily create orphans.
func mkdirStrict(virtOS vos.VOS) func(string, os.FileMode) error {
	return func(dir string, perm os.FileMode) error {
		if _, err := virtOS.Stat(dir); err == nil {
			return fmt.Errorf("File exists")
		}
		parent, err := virtOS.Stat(path.Dir(dir))
		switch {
		case err != nil:
			return fmt.Errorf("No such file or directory")
		case !parent.IsDir():
			return fmt.Errorf("Not a directory")
		}
		return virtOS.Mkdir(dir, perm)
	}
}

var _ vos.ProcessFunc = Mkdir

func init() {
	addCmd("mkdir", Mkdir)
}
