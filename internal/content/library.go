// Package content implements the site's content collections: loading
// markdown files with YAML front matter into typed entries, validating them
// against each collection's declared schema, and exposing the lookup API the
// build pipeline and templates consume.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/log"
	"github.com/StevenPG/scribe/internal/markdown"
)

// Filter is a predicate applied by GetCollection.
type Filter func(*Entry) bool

// WithTag keeps entries carrying the given tag.
func WithTag(tag string) Filter {
	return func(e *Entry) bool {
		for _, t := range e.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}
}

// FeaturedOnly keeps entries flagged as featured.
func FeaturedOnly(e *Entry) bool { return e.Featured }

// Library holds every loaded collection and answers entry lookups.
type Library struct {
	collections map[string][]*Entry
	bySlug      map[string]map[string]*Entry
	renderer    *markdown.Renderer

	mu       sync.Mutex
	rendered map[string]markdown.Document
}

// Load walks every declared collection directory under cfg.ContentDir and
// builds the library. Draft entries are skipped unless cfg.BuildDrafts is
// set. Schema violations, bad dates, and duplicate slugs fail the load.
func Load(cfg config.Config, renderer *markdown.Renderer) (*Library, error) {
	lib := &Library{
		collections: make(map[string][]*Entry),
		bySlug:      make(map[string]map[string]*Entry),
		renderer:    renderer,
		rendered:    make(map[string]markdown.Document),
	}
	logger := log.WithComponent("content")

	for _, col := range cfg.Collections {
		dir := filepath.Join(cfg.ContentDir, col.Dir)
		lib.collections[col.Name] = []*Entry{}
		lib.bySlug[col.Name] = make(map[string]*Entry)

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Debug().Str("collection", col.Name).Str("dir", dir).Msg("collection directory missing, skipping")
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return fmt.Errorf("error accessing %s: %w", path, walkErr)
			}
			if d.IsDir() || !isContentFile(d.Name()) {
				return nil
			}

			entry, err := loadEntry(path, dir, col)
			if err != nil {
				return err
			}
			if entry.Draft && !cfg.BuildDrafts {
				logger.Debug().Str("path", path).Msg("skipping draft")
				return nil
			}

			if prev, dup := lib.bySlug[col.Name][entry.Slug]; dup {
				return fmt.Errorf("%w: %q used by both %s and %s in collection %s",
					ErrDuplicateSlug, entry.Slug, prev.SourcePath, entry.SourcePath, col.Name)
			}
			lib.bySlug[col.Name][entry.Slug] = entry
			lib.collections[col.Name] = append(lib.collections[col.Name], entry)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load collection %s: %w", col.Name, err)
		}

		SortEntries(lib.collections[col.Name])
		logger.Info().Str("collection", col.Name).Int("entries", len(lib.collections[col.Name])).Msg("collection loaded")
	}

	if err := lib.checkReferences(); err != nil {
		return nil, err
	}
	return lib, nil
}

func isContentFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".mdx")
}

func loadEntry(path, dir string, col config.Collection) (*Entry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var meta Metadata
	body, err := markdown.SplitFrontMatter(src, &meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// The schema check works on key presence, so decode the block a second
	// time into a plain map.
	raw := map[string]any{}
	if _, err := markdown.SplitFrontMatter(src, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var missing []string
	for _, field := range col.Required {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Path: path, Fields: missing}
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s against %s: %w", path, dir, err)
	}
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	id := filepath.ToSlash(stem)

	slug := meta.Slug
	if slug == "" {
		slug = Slugify(filepath.Base(stem))
	}
	title := meta.Title
	if title == "" {
		title = TitleFromStem(filepath.Base(stem))
	}

	date, err := ParseDate(meta.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	updated, err := ParseDate(meta.Updated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var related []Reference
	for _, r := range meta.Related {
		ref, err := ParseReference(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		related = append(related, ref)
	}

	return &Entry{
		ID:          id,
		Slug:        slug,
		Collection:  col.Name,
		Title:       title,
		Description: meta.Description,
		Date:        date,
		Updated:     updated,
		Tags:        meta.Tags,
		Featured:    meta.Featured,
		Draft:       meta.Draft,
		Image:       meta.Image,
		Layout:      meta.Layout,
		Related:     related,
		Extra:       meta.Extra,
		Body:        body,
		SourcePath:  path,
	}, nil
}

// SortEntries orders newest-first; undated entries sink to the end, ties
// break on ID so output is deterministic.
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return a.ID < b.ID
		case a.Date.IsZero():
			return false
		case b.Date.IsZero():
			return true
		case a.Date.Equal(b.Date):
			return a.ID < b.ID
		default:
			return a.Date.After(b.Date)
		}
	})
}

// checkReferences verifies that every front matter reference points at a
// loaded entry, so broken cross-links surface at build time rather than as
// dead links.
func (l *Library) checkReferences() error {
	for name, entries := range l.collections {
		for _, e := range entries {
			for _, ref := range e.Related {
				if _, err := l.GetEntry(ref.Collection, ref.Slug); err != nil {
					return fmt.Errorf("%s (collection %s) references %s: %w", e.SourcePath, name, ref, err)
				}
			}
		}
	}
	return nil
}

// Collections lists the loaded collection names, sorted.
func (l *Library) Collections() []string {
	names := make([]string, 0, len(l.collections))
	for name := range l.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCollection returns the entries of a collection, newest first, keeping
// only entries matching every filter. Unknown collections return nil.
func (l *Library) GetCollection(name string, filters ...Filter) []*Entry {
	entries, ok := l.collections[name]
	if !ok {
		return nil
	}
	if len(filters) == 0 {
		out := make([]*Entry, len(entries))
		copy(out, entries)
		return out
	}
	var out []*Entry
outer:
	for _, e := range entries {
		for _, keep := range filters {
			if !keep(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// GetEntry looks up a single entry by collection and slug.
func (l *Library) GetEntry(collection, slug string) (*Entry, error) {
	bySlug, ok := l.bySlug[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	}
	entry, ok := bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, slug, ErrNotFound)
	}
	return entry, nil
}

// GetEntries resolves references in order, failing on the first miss.
func (l *Library) GetEntries(refs []Reference) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(refs))
	for _, ref := range refs {
		entry, err := l.GetEntry(ref.Collection, ref.Slug)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Render converts an entry body to HTML, caching the result so repeated
// template use of the same entry renders once.
func (l *Library) Render(e *Entry) (markdown.Document, error) {
	key := e.Collection + "/" + e.Slug

	l.mu.Lock()
	doc, ok := l.rendered[key]
	l.mu.Unlock()
	if ok {
		return doc, nil
	}

	doc, err := l.renderer.Render(e.Body)
	if err != nil {
		return markdown.Document{}, fmt.Errorf("failed to render %s: %w", e.SourcePath, err)
	}

	l.mu.Lock()
	l.rendered[key] = doc
	l.mu.Unlock()
	return doc, nil
}

// Tags groups a collection's entries by tag. Entries keep their newest-first
// order inside each bucket.
func (l *Library) Tags(collection string) map[string][]*Entry {
	tags := make(map[string][]*Entry)
	for _, e := range l.collections[collection] {
		for _, t := range e.Tags {
			tags[t] = append(tags[t], e)
		}
	}
	return tags
}

// IsNotFound reports whether err is an entry/collection miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
