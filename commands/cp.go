package commands

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Cp implements a POSIX cp command for regular files.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/cp.html
func Cp(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "cp [-f] SOURCE... DEST",
		Short: "Copy files.",
	}

	// Destinations are always overwritten.
	cmd.Flags().Bool('f', "delete destination files that can't be written to")

	return cmd.Run(virtOS, func() int {
		args := cmd.Flags().Args()
		if len(args) < 2 {
			fmt.Fprintln(virtOS.Stderr(), "cp: Needs 2 arguments")
			return 1
		}

		sources, dest := args[:len(args)-1], args[len(args)-1]
		destIsDir := false
		if stat, err := virtOS.Stat(dest); err == nil && stat.IsDir() {
			destIsDir = true
		}
		if len(sources) > 1 && !destIsDir {
			fmt.Fprintf(virtOS.Stderr(), "cp: '%s' not directory\n", dest)
			return 1
		}

		code := 0
		for _, src := range sources {
			target := dest
			if destIsDir {
				target = path.Join(dest, path.Base(src))
			}

			if err := copyFile(virtOS, src, target); err != nil {
				cmd.LogProgramError(virtOS, err)
				code = 1
			}
		}
		return code
	})
}

func copyFile(virtOS vos.VOS, src, dest string) error {
	stat, err := virtOS.Stat(src)
	switch {
	case err != nil:
		return fmt.Errorf("%s: No such file or directory", src)
	case stat.IsDir():
		return fmt.Errorf("Skipped dir '%s'", src)
	}

	in, err := virtOS.Open(src)
	if err != nil {
		return fmt.Errorf("%s: %v", src, err)
	}
	defer in.Close()

	out, err := virtOS.Create(dest)
	if err != nil {
		return fmt.Errorf("%s: %v", dest, err)
	}

	_, copyErr := io.Copy(out, in)
	if err := errors.Join(copyErr, out.Close()); err != nil {
		return fmt.Errorf("%s: %v", dest, err)
	}
	return virtOS.Chmod(dest, stat.Mode().Perm())
}

var _ vos.ProcessFunc = Cp

func init() {
	addCmd("cp", Cp)
}
