package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/log"
	"github.com/StevenPG/scribe/internal/markdown"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates all content without writing output",
	Long: `The check command loads every collection (drafts included), runs the
same front matter schema validation as a build, verifies cross-entry
references, and validates the project list. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.WithComponent("check")

		checkCfg := cfg
		checkCfg.BuildDrafts = true

		lib, err := content.Load(checkCfg, markdown.NewRenderer())
		if err != nil {
			return err
		}
		for _, name := range lib.Collections() {
			logger.Info().Str("collection", name).Int("entries", len(lib.GetCollection(name))).Msg("collection ok")
		}

		projects, err := config.LoadProjects(checkCfg.ProjectsFile)
		if err != nil {
			return err
		}
		logger.Info().Int("projects", len(projects)).Msg("project list ok")

		logger.Info().Msg("all content valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
