package commands

import (
	"fmt"
	"io"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/fakedevice/core/shell"
	"github.com/josephlewis42/fakedevice/core/vos"
)

// Xargs implements a POSIX xargs command: it appends the words read from
// stdin to the command line and runs it.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/xargs.html
func Xargs(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "xargs [-n MAX] [COMMAND [ARG]...]",
		Short: "Run a command with arguments read from stdin.",
	}

	maxArgs := cmd.Flags().Int('n', 0, "max number of arguments per command")

	return cmd.Run(virtOS, func() int {
		input, err := io.ReadAll(virtOS.Stdin())
		if err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		words, err := shlex.Split(string(input), true)
		if err != nil {
			virtOS.LogInvalidInvocation(err)
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		base := cmd.Flags().Args()
		if len(base) == 0 {
			base = []string{"echo"}
		}

		batch := len(words)
		if *maxArgs > 0 {
			batch = *maxArgs
		}

		code := 0
		for start := 0; start == 0 || start < len(words); start += batch {
			end := start + batch
			if end > len(words) || batch == 0 {
				end = len(words)
			}

			argv := append(append([]string(nil), base...), words[start:end]...)
			if status := runChild(virtOS, argv); status != 0 {
				code = 123
				if status == 255 || status == shell.ExitNotFound {
					return status
				}
			}

			if batch == 0 {
				break
			}
		}
		return code
	})
}

// runChild runs argv as a child process sharing virtOS's standard streams.
func runChild(virtOS vos.VOS, argv []string) int {
	proc, err := virtOS.StartProcess(argv[0], argv, &vos.ProcAttr{
		Files: vos.NewVIOAdapter(virtOS.Stdin(), virtOS.Stdout(), virtOS.Stderr()),
	})
	if err != nil {
		virtOS.LogUnknownCommand(argv)
		fmt.Fprintf(virtOS.Stderr(), "xargs: %v\n", err)
		return shell.ExitNotFound
	}
	return proc.Run()
}

var _ vos.ProcessFunc = Xargs

func init() {
	addCmd("xargs", Xargs)
}
