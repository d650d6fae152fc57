package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/markdown"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// fixtureConfig lays down a small two-collection site in a temp dir.
func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "posts", "first-post.md"), `---
title: First Post
date: 2024-01-02
tags: [go, testing]
---

This is the opening paragraph of the first post.

More text follows here.
`)
	writeFile(t, filepath.Join(root, "posts", "second.md"), `---
title: Second Post
slug: renamed
date: 2024-03-04
tags: [go]
featured: true
related:
  - authors/steven
---

Second post body.
`)
	writeFile(t, filepath.Join(root, "posts", "wip.md"), `---
title: Work In Progress
date: 2024-05-06
draft: true
---

Not done yet.
`)
	writeFile(t, filepath.Join(root, "authors", "steven.md"), `---
title: Steven
---

About the author.
`)

	return config.Config{
		ContentDir: root,
		Collections: []config.Collection{
			{Name: "posts", Dir: "posts", Required: []string{"title", "date"}, Feed: true},
			{Name: "authors", Dir: "authors", Required: []string{"title"}},
		},
	}
}

func TestLoadSortsNewestFirstAndSkipsDrafts(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	posts := lib.GetCollection("posts")
	require.Len(t, posts, 2)
	assert.Equal(t, "renamed", posts[0].Slug)
	assert.Equal(t, "first-post", posts[1].Slug)
	assert.Equal(t, "/posts/renamed/", posts[0].Permalink())
}

func TestLoadIncludesDraftsWhenConfigured(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.BuildDrafts = true

	lib, err := Load(cfg, markdown.NewRenderer())
	require.NoError(t, err)

	posts := lib.GetCollection("posts")
	require.Len(t, posts, 3)
	assert.Equal(t, "wip", posts[0].Slug) // newest date sorts first
	assert.True(t, posts[0].Draft)
}

func TestGetEntry(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	entry, err := lib.GetEntry("posts", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "Second Post", entry.Title)
	assert.True(t, entry.Featured)

	_, err = lib.GetEntry("posts", "nope")
	assert.True(t, IsNotFound(err))

	_, err = lib.GetEntry("recipes", "anything")
	assert.True(t, IsNotFound(err))
}

func TestGetEntriesResolvesReferencesInOrder(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	entries, err := lib.GetEntries([]Reference{
		{Collection: "authors", Slug: "steven"},
		{Collection: "posts", Slug: "first-post"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Steven", entries[0].Title)
	assert.Equal(t, "First Post", entries[1].Title)

	_, err = lib.GetEntries([]Reference{{Collection: "posts", Slug: "missing"}})
	assert.True(t, IsNotFound(err))
}

func TestGetCollectionFilters(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	featured := lib.GetCollection("posts", FeaturedOnly)
	require.Len(t, featured, 1)
	assert.Equal(t, "renamed", featured[0].Slug)

	tagged := lib.GetCollection("posts", WithTag("testing"))
	require.Len(t, tagged, 1)
	assert.Equal(t, "first-post", tagged[0].Slug)

	assert.Nil(t, lib.GetCollection("recipes"))
}

func TestTagsGroupsEntries(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	tags := lib.Tags("posts")
	require.Len(t, tags["go"], 2)
	require.Len(t, tags["testing"], 1)
	// Newest-first order is preserved inside a bucket.
	assert.Equal(t, "renamed", tags["go"][0].Slug)
}

func TestRenderCachesPerEntry(t *testing.T) {
	lib, err := Load(fixtureConfig(t), markdown.NewRenderer())
	require.NoError(t, err)

	entry, err := lib.GetEntry("posts", "first-post")
	require.NoError(t, err)

	doc, err := lib.Render(entry)
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "<p>This is the opening paragraph")
	assert.Equal(t, "This is the opening paragraph of the first post.", doc.Excerpt)

	again, err := lib.Render(entry)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "posts", "undated.md"), `---
title: No Date Here
---

Body.
`)

	_, err := Load(cfg, markdown.NewRenderer())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"date"}, verr.Fields)
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "posts", "clash.md"), `---
title: Clash
slug: renamed
date: 2024-06-01
---

Body.
`)

	_, err := Load(cfg, markdown.NewRenderer())
	require.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestLoadRejectsBrokenReferences(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "posts", "broken.md"), `---
title: Broken Link
date: 2024-06-01
related:
  - authors/nobody
---

Body.
`)

	_, err := Load(cfg, markdown.NewRenderer())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadDerivesTitleAndSlugFromFilename(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Collections = append(cfg.Collections, config.Collection{Name: "pages", Dir: "pages"})
	writeFile(t, filepath.Join(cfg.ContentDir, "pages", "jane-doe.md"), "No front matter at all.\n")

	lib, err := Load(cfg, markdown.NewRenderer())
	require.NoError(t, err)

	entry, err := lib.GetEntry("pages", "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", entry.Title)
}

func TestLoadMissingCollectionDirIsEmpty(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Collections = append(cfg.Collections, config.Collection{Name: "recipes", Dir: "recipes"})

	lib, err := Load(cfg, markdown.NewRenderer())
	require.NoError(t, err)
	assert.Empty(t, lib.GetCollection("recipes"))
	assert.Equal(t, []string{"authors", "posts", "recipes"}, lib.Collections())
}
