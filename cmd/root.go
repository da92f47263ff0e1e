package cmd

import (
	"fmt"
	"os"

	"config-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "config-manager",
	Short: "Managed configuration file reconciler",
	Long: `Config Manager keeps local configuration files in line with the values
distributed for them. It reports drift, rewrites files and reloads the
services that read them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configPath is the directory holding the optional .env file.
var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives readable timestamps for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing the .env file")
}
