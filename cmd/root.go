package cmd

import (
	"os"

	"spacebook/config"
	"spacebook/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spacebook",
	Short: "Booking marketplace API for time-priced properties",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		utils.InitializeLogger()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, indexesCmd, tokenCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
