package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "chantier",
	Short: "Construction project planning engine",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
