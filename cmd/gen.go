package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/log"
	"github.com/StevenPG/scribe/internal/manifest"
	"github.com/StevenPG/scribe/internal/markdown"
)

var genOutput string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generates the content collection manifest",
	Long: `The gen command loads every collection (drafts included) and writes
content.gen.json: a manifest of collection schemas and entry identities that
editors and external tooling can consume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The manifest describes everything authored, drafts included.
		genCfg := cfg
		genCfg.BuildDrafts = true

		lib, err := content.Load(genCfg, markdown.NewRenderer())
		if err != nil {
			return err
		}

		m := manifest.Build(genCfg, lib)
		if err := m.Write(genOutput); err != nil {
			return err
		}
		logger := log.WithComponent("gen")
		logger.Info().Str("path", genOutput).Int("collections", len(m.Collections)).Msg("manifest written")
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genOutput, "output", "o", manifest.Filename, "manifest output path")
	rootCmd.AddCommand(genCmd)
}
