package cmd

import (
	"log"

	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the device configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the device configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		_, err := config.Initialize(cfgPath, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
