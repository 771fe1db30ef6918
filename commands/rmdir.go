package commands

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Rmdir implements a POSIX rmdir command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/rmdir.html
func Rmdir(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "rmdir [-pv] DIRECTORY...",
		Short: "Remove empty directories.",
	}

	parents := cmd.Flags().BoolLong("parents", 'p', "remove parents too")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every deleted directory")

	return cmd.Run(virtOS, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(virtOS.Stderr(), "rmdir: Needs 1 argument")
			return 1
		}

		anyFailed := false
		for _, dir := range directories {
			steps := []string{}
			if *parents {
				var built []string
				for _, p := range strings.Split(dir, "/") {
					built = append(built, p)
					steps = append(steps, path.Join(built...))
				}
				// Sort longest to shortest for depth.
				sort.Slice(steps, func(i, j int) bool {
					return len(steps[i]) > len(steps[j])
				})
			} else {
				steps = append(steps, dir)
			}

			for _, dir := range steps {
				file, err := virtOS.Open(dir)
				if err != nil {
					fmt.Fprintf(virtOS.Stderr(), "rmdir: %s: No such file or directory\n", dir)
					anyFailed = true
					break
				}

				contents, err := file.Readdir(-1)
				file.Close()
				if err != nil {
					fmt.Fprintf(virtOS.Stderr(), "rmdir: %s: Not a directory\n", dir)
					anyFailed = true
					break
				}

				if len(contents) > 0 {
					fmt.Fprintf(virtOS.Stderr(), "rmdir: %s: Directory not empty\n", dir)
					anyFailed = true
					break
				}

				// Remove
				if err := virtOS.Remove(dir); err != nil {
					fmt.Fprintf(virtOS.Stderr(), "rmdir: %s: %s\n", dir, err)
					anyFailed = true
					break
				}
				if *verbose {
					fmt.Fprintf(virtOS.Stdout(), "rmdir: removed directory '%s'\n", dir)
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Rmdir

func init() {
	addCmd("rmdir", Rmdir)
}
