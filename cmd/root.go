package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/placeatlas/ops-portal/cmd/flags"
)

var RootCmd = &cobra.Command{
	Use:   "ops-portal",
	Short: "Backend of the internal operations portal",
	Long: `Session lifecycle management and security alerting for the places
platform operations portal.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "data/config.json", "config file")
	RootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "start with debug mode")
	RootCmd.PersistentFlags().BoolVar(&flags.Dev, "dev", false, "start with dev mode")
	RootCmd.PersistentFlags().BoolVar(&flags.LogStd, "log-std", false, "force log to std")
}
