// Package manifest emits content.gen.json, a machine-readable map of the
// declared collections and their loaded entries for external tooling.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/content"
)

// Filename is the conventional manifest location relative to the site root.
const Filename = "content.gen.json"

// Manifest describes every collection the site declares.
type Manifest struct {
	Collections map[string]Collection `json:"collections"`
}

// Collection pairs a collection's declared schema with its loaded entries.
type Collection struct {
	Dir      string   `json:"dir"`
	Required []string `json:"required,omitempty"`
	Entries  []Entry  `json:"entries"`
}

// Entry is the stable identity of one loaded document.
type Entry struct {
	ID    string   `json:"id"`
	Slug  string   `json:"slug"`
	Title string   `json:"title"`
	Date  string   `json:"date,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Draft bool     `json:"draft,omitempty"`
}

// Build assembles the manifest from the declared collections and the loaded
// library. Output is deterministic: collections marshal sorted by key and
// entries keep the library's newest-first order.
func Build(cfg config.Config, lib *content.Library) Manifest {
	m := Manifest{Collections: make(map[string]Collection)}
	for _, col := range cfg.Collections {
		out := Collection{
			Dir:      col.Dir,
			Required: col.Required,
			Entries:  []Entry{},
		}
		for _, e := range lib.GetCollection(col.Name) {
			entry := Entry{
				ID:    e.ID,
				Slug:  e.Slug,
				Title: e.Title,
				Tags:  e.Tags,
				Draft: e.Draft,
			}
			if !e.Date.IsZero() {
				entry.Date = e.Date.Format(time.RFC3339)
			}
			out.Entries = append(out.Entries, entry)
		}
		m.Collections[col.Name] = out
	}
	return m
}

// Write marshals the manifest to path with stable indentation.
func (m Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
