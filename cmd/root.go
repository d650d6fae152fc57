// Package cmd wires up the scribe CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/log"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "scribe - a markdown blog and portfolio site generator",
	Long: `scribe takes markdown content with YAML front matter, organizes it
into typed collections, and generates a static blog/portfolio site from your
layouts. It also previews the site locally with automatic rebuilds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		log.Configure(log.Config{
			Level:  level,
			Pretty: isatty.IsTerminal(os.Stderr.Fd()),
		})

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the CLI, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./scribe.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
