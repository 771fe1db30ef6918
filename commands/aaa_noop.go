package commands

import (
	"fmt"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// No-op commands.
type NoOpCommand struct {
	Name     string
	Use      string
	Short    string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Convert the no-op command description to a functioning command.
func (c *NoOpCommand) ToCommand() vos.ProcessFunc {
	return func(virtOS vos.VOS) int {
		cmd := &SimpleCommand{
			Use:   c.Use,
			Short: c.Short,
			// Never bail, even if args are bad.
			NeverBail: true,
		}

		return cmd.Run(virtOS, func() int {
			if c.Stdout != "" {
				fmt.Fprintln(virtOS.Stdout(), c.Stdout)
			}
			if c.Stderr != "" {
				fmt.Fprintln(virtOS.Stderr(), c.Stderr)
			}

			return c.ExitCode
		})
	}
}

var noOpCommands = []NoOpCommand{
	{
		Name:  "am",
		Use:   "am [subcommand] [options]",
		Short: "Activity manager.",
	},
	{
		Name:  "input",
		Use:   "input [<source>] <command> [<arg>...]",
		Short: "Inject input events.",
	},
	{
		Name:  "kill",
		Use:   "kill [-s SIGNAL] PID...",
		Short: "Send a signal to a process.",
	},
	{
		Name:  "logcat",
		Use:   "logcat [options] [filterspecs]",
		Short: "Print the device log.",
	},
	{
		Name:     "pm",
		Use:      "pm [subcommand] [options]",
		Short:    "Package manager.",
		Stderr:   "Security exception: Shell does not have permission to access user 0",
		ExitCode: 255,
	},
	{
		Name:  "settings",
		Use:   "settings [--user NUM] get|put|delete NAMESPACE KEY [VALUE]",
		Short: "Get or put system settings.",
	},
	{
		Name:     "reboot",
		Use:      "reboot [-p] [REASON]",
		Short:    "Restart the device.",
		Stderr:   "reboot: Operation not permitted",
		ExitCode: 1,
	},
	{
		Name:  "sleep",
		Use:   "sleep DURATION",
		Short: "Wait before exiting, time doesn't pass on the device so this returns immediately.",
	},
}

func init() {
	for i := range noOpCommands {
		cmd := noOpCommands[i]
		addCmd(cmd.Name, cmd.ToCommand())
	}
}
