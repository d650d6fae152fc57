package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/log"
)

// scaffoldMeta is the front matter written for a fresh entry. Field order
// here is the order in the generated file.
type scaffoldMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

var newCmd = &cobra.Command{
	Use:   "new <collection> <title>",
	Short: "Scaffolds a new content entry",
	Long: `The new command creates a markdown file in the given collection's
directory with front matter pre-filled from the title. The entry starts as a
draft so it stays out of builds until you publish it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionName, title := args[0], args[1]

		col, ok := cfg.Collection(collectionName)
		if !ok {
			return fmt.Errorf("unknown collection %q (declared: %v)", collectionName, collectionNames())
		}

		slug := content.Slugify(title)
		if slug == "" {
			return fmt.Errorf("title %q produces an empty slug", title)
		}
		path := filepath.Join(cfg.ContentDir, col.Dir, slug+".md")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		meta := scaffoldMeta{
			Title: title,
			Date:  time.Now().Format("2006-01-02"),
			Tags:  []string{},
			Draft: true,
		}
		fm, err := yaml.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal front matter: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return fmt.Errorf("failed to create collection directory: %w", err)
		}
		body := "---\n" + string(fm) + "---\n\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		logger := log.WithComponent("new")
		logger.Info().Str("path", path).Str("slug", slug).Msg("entry scaffolded")
		return nil
	},
}

func collectionNames() []string {
	names := make([]string, 0, len(cfg.Collections))
	for _, c := range cfg.Collections {
		names = append(names, c.Name)
	}
	return names
}

func init() {
	rootCmd.AddCommand(newCmd)
}
