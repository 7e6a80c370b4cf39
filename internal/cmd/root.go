// Package cmd implements the tintd command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tintd/tintd/config"
)

var Version = "0.2.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "tintd",
	Version: Version,
	Short:   "Software screen brightness and tint via gamma tables",
	Long: "tintd dims and tints connected displays by rewriting their gamma\n" +
		"transfer tables, without touching hardware backlight controls.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+defaultConfigHint()+")")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
}

func defaultConfigHint() string {
	path, err := config.DefaultPath()
	if err != nil {
		return "~/.config/tintd/tintd.yaml"
	}
	return path
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}
