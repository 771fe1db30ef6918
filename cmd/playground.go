package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/fakedevice/commands"
	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/spf13/cobra"
)

// playgroundCmd runs scripts typed on the terminal against the device.
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run scripts on the device interactively, one per line.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}

		device, eventLog, closeLog, err := openDevice(configuration)
		if err != nil {
			return err
		}
		defer closeLog()

		rl, err := readline.NewEx(&readline.Config{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		errColor := color.New(color.FgRed)
		session := eventLog.NewSession("playground")
		hostname := commands.DeviceUname(device.Device()).Nodename

		for {
			user := device.Device().CurrentUser()
			prompt := "$"
			if user.UID == 0 {
				prompt = "#"
			}
			rl.SetPrompt(fmt.Sprintf("%s@%s %s ", user.Name, hostname, prompt))

			line, err := rl.Readline()
			switch {
			case err == io.EOF:
				return nil
			case err == readline.ErrInterrupt:
				// Interrupt clears line.
				continue
			case err != nil:
				return err
			}

			line = strings.TrimSpace(line)
			switch line {
			case "":
				continue
			case "exit":
				return nil
			}

			files := vos.NewVIOAdapter(nil, cmd.OutOrStdout(), cmd.ErrOrStderr())
			code, err := device.Exec(session, line, files)
			if err != nil {
				errColor.Fprintf(cmd.ErrOrStderr(), "sh: %v\n", err)
			}
			if code != 0 {
				errColor.Fprintf(cmd.ErrOrStderr(), "[exit %d]\n", code)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
