package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "palisade",
	Short: "Palisade - embedded data-grid cache with realm-based security",
	Long: `Palisade is an embedded data-grid cache with realm-based integrated
security. A node hosts named key/value regions over memory or SQLite
storage; at startup, security activation discovers the declared realms,
builds a composite security manager over them, and enables integrated
security on the cache.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "palisade.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
