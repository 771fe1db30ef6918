package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Touch implements a POSIX touch command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/touch.html
func Touch(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "touch [-acm] FILE...",
		Short: "Update the access and modification times of files to now.",
	}

	// Access times aren't tracked, both flags update the modification time.
	cmd.Flags().Bool('a', "only change the access time")
	cmd.Flags().Bool('m', "only change the modification time")

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.Run(virtOS, func() int {
		now := virtOS.Device().Now()

		var anyFailed bool
		for _, path := range cmd.Flags().Args() {
			err := virtOS.Chtimes(path, now, now)
			switch {
			case errors.Is(err, fs.ErrNotExist) && !*noCreate:
				fd, err := virtOS.Create(path)
				if err != nil {
					fmt.Fprintf(virtOS.Stderr(), "touch: '%s': %s\n", path, err)
					anyFailed = true
					continue
				}
				fd.Close()
				virtOS.Chtimes(path, now, now)
			case errors.Is(err, fs.ErrNotExist) && *noCreate:
				// Not an error.
			case err != nil:
				fmt.Fprintf(virtOS.Stderr(), "touch: '%s': %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Touch

func init() {
	addCmd("touch", Touch)
}
