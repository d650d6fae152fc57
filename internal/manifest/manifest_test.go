package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/markdown"
)

func fixture(t *testing.T) (config.Config, *content.Library) {
	t.Helper()
	root := t.TempDir()

	write := func(rel, body string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("posts/hello.md", "---\ntitle: Hello\ndate: 2024-01-02\ntags: [go]\n---\n\nHi.\n")
	write("posts/wip.md", "---\ntitle: WIP\ndate: 2024-02-03\ndraft: true\n---\n\nSoon.\n")

	cfg := config.Config{
		ContentDir:  root,
		BuildDrafts: true,
		Collections: []config.Collection{
			{Name: "posts", Dir: "posts", Required: []string{"title", "date"}},
			{Name: "authors", Dir: "authors"},
		},
	}
	lib, err := content.Load(cfg, markdown.NewRenderer())
	require.NoError(t, err)
	return cfg, lib
}

func TestBuild(t *testing.T) {
	cfg, lib := fixture(t)

	m := Build(cfg, lib)
	require.Len(t, m.Collections, 2)

	posts := m.Collections["posts"]
	assert.Equal(t, "posts", posts.Dir)
	assert.Equal(t, []string{"title", "date"}, posts.Required)
	require.Len(t, posts.Entries, 2)
	assert.Equal(t, "wip", posts.Entries[0].Slug) // newest first, drafts included
	assert.True(t, posts.Entries[0].Draft)
	assert.Equal(t, "2024-01-02T00:00:00Z", posts.Entries[1].Date)

	// Empty collections still appear, with an empty (not null) entry list.
	assert.NotNil(t, m.Collections["authors"].Entries)
	assert.Empty(t, m.Collections["authors"].Entries)
}

func TestWrite(t *testing.T) {
	cfg, lib := fixture(t)
	path := filepath.Join(t.TempDir(), Filename)

	require.NoError(t, Build(cfg, lib).Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Collections["posts"].Entries, 2)

	// Regenerating without changes must be byte-identical.
	path2 := filepath.Join(t.TempDir(), Filename)
	require.NoError(t, Build(cfg, lib).Write(path2))
	data2, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}
