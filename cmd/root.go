package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/fakedevice/core"
	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	runUser string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to an in-memory device if the config
// directory hasn't been initialized.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// openDevice boots the configured device with events going to the event
// log. The returned func closes the log.
func openDevice(configuration *config.Configuration) (*core.FakeDevice, *logger.Logger, func() error, error) {
	logFd, err := configuration.OpenEventLog()
	if err != nil {
		return nil, nil, nil, err
	}
	eventLog := logger.NewJsonLinesLogRecorder(logFd)

	device, err := core.NewFakeDevice(configuration, eventLog)
	if err != nil {
		logFd.Close()
		return nil, nil, nil, err
	}

	if runUser != "" {
		if err := device.SetCurrentUser(runUser); err != nil {
			logFd.Close()
			return nil, nil, nil, err
		}
	}

	return device, eventLog, logFd.Close, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fakedevice",
	Short: "Simulated device shell",
	Long:  `Runs shell scripts against a simulated Android device.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.PersistentFlags().StringVar(&runUser, "user", "", "run scripts as this device user")
}
