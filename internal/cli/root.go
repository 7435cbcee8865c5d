package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	addr       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAddr := os.Getenv("HTTP_ADDR")
	if envAddr == "" {
		envAddr = ":8080"
	}

	cmd := &cobra.Command{
		Use:   "qbankd",
		Short: "Question-bank service: browse, answer and ingest multiple-choice questions",
	}

	cmd.PersistentFlags().StringVar(&addr, "addr", envAddr, "address to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config (optional)")
	cmd.AddCommand(newServeCmd(&configPath, &addr))
	return cmd
}
