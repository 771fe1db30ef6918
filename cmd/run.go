package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/spf13/cobra"
)

var runInput string

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a script on the device and exit with its status.",
	Long: `Run a script on the device and exit with its status.

If the config directory hasn't been initialized the device lives in memory.`,
	Args: cobra.ExactArgs(1),
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

		var stdin io.Reader
		if runInput != "" {
			fd, err := os.Open(runInput)
			if err != nil {
				return err
			}
			defer fd.Close()
			stdin = fd
		}

		files := vos.NewVIOAdapter(stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		code, err := device.Exec(eventLog.NewSession(""), args[0], files)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "sh: %v\n", err)
		}

		if code != 0 {
			closeLog()
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "file to use as the script's stdin")
	rootCmd.AddCommand(runCmd)
}
