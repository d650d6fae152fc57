package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StevenPG/scribe/internal/site"
)

var buildDrafts bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads every declared content collection from the
content directory, validates front matter against each collection's schema,
applies layouts (including partials), copies static assets, and generates the
site in the configured output directory (default ./public/).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildDrafts {
			cfg.BuildDrafts = true
		}
		return site.New(cfg).Build()
	},
}

func init() {
	buildCmd.Flags().BoolVarP(&buildDrafts, "drafts", "D", false, "include draft entries in the build")
	rootCmd.AddCommand(buildCmd)
}
