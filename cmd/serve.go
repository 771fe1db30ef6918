package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/fakedevice/core"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept scripts over SSH.",
	Long: `Accept scripts over SSH.

The command of each exec request is run as a script; sessions without a
command send the script on stdin.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true
		log.Println("Initializing server...")

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		appLogFd, err := configuration.OpenAppLog()
		if err != nil {
			return err
		}
		defer appLogFd.Close()
		appLog := log.New(appLogFd, "[serve] ", log.LstdFlags)

		log.Println("Starting logger...")
		device, eventLog, closeLog, err := openDevice(configuration)
		if err != nil {
			return err
		}
		defer closeLog()

		server, err := core.NewServer(configuration, device, eventLog, appLog)
		if err != nil {
			return err
		}

		go func() {
			log.Printf("- Starting SSH server on %s\n", server.Addr())
			if err := server.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("Got signal %q, terminating...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
