// Package site drives the build: it loads the content library, resolves
// layouts, and writes every generated page to the output directory.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/StevenPG/scribe/internal/config"
	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/log"
	"github.com/StevenPG/scribe/internal/markdown"
)

const defaultSingleLayout = "single.html"

// SiteData is the site-wide template context, available on every page.
type SiteData struct {
	Config      config.Config
	Projects    []config.Project
	Posts       []*content.Entry
	Featured    []*content.Entry
	Tags        map[string][]*content.Entry
	Collections map[string][]*content.Entry
}

// Builder runs the build pipeline. Construct with New and call Build; a
// Builder is reusable, each Build reloads content from disk.
type Builder struct {
	cfg      config.Config
	renderer *markdown.Renderer
	logger   zerolog.Logger
}

func New(cfg config.Config) *Builder {
	return &Builder{
		cfg:      cfg,
		renderer: markdown.NewRenderer(),
		logger:   log.WithComponent("build"),
	}
}

// Build generates the whole site into cfg.OutputDir.
func (b *Builder) Build() error {
	cfg := b.cfg

	b.logger.Info().Str("output", cfg.OutputDir).Str("baseURL", cfg.BaseURL).Msg("starting build")

	if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
		return fmt.Errorf("content directory %q not found", cfg.ContentDir)
	}
	if _, err := os.Stat(cfg.LayoutsDir); os.IsNotExist(err) {
		return fmt.Errorf("layouts directory %q not found", cfg.LayoutsDir)
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to clean output directory %s: %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
		b.logger.Debug().Str("dir", cfg.StaticDir).Msg("static assets copied")
	}

	templates, err := loadLayouts(cfg.LayoutsDir)
	if err != nil {
		return err
	}

	projects, err := config.LoadProjects(cfg.ProjectsFile)
	if err != nil {
		return err
	}

	lib, err := content.Load(cfg, b.renderer)
	if err != nil {
		return err
	}

	site := &SiteData{
		Config:      cfg,
		Projects:    projects,
		Posts:       lib.GetCollection("posts"),
		Featured:    lib.GetCollection("posts", content.FeaturedOnly),
		Tags:        lib.Tags("posts"),
		Collections: make(map[string][]*content.Entry),
	}
	for _, name := range lib.Collections() {
		site.Collections[name] = lib.GetCollection(name)
	}

	pages := 0
	for _, name := range lib.Collections() {
		for _, entry := range lib.GetCollection(name) {
			if err := b.writeEntry(templates, site, lib, entry); err != nil {
				return err
			}
			pages++
		}
	}

	n, err := b.writeSitePages(templates, site, lib)
	if err != nil {
		return err
	}
	pages += n

	if err := b.writeFeed(site, lib); err != nil {
		return err
	}
	if err := b.writeSitemap(site, lib); err != nil {
		return err
	}

	b.logger.Info().Int("pages", pages).Msg("build complete")
	return nil
}

// resolveLayout picks the layout for an entry: front matter first, then the
// collection default, then single.html, finally base.html.
func (b *Builder) resolveLayout(templates *template.Template, entry *content.Entry) (string, error) {
	candidates := []string{entry.Layout}
	if col, ok := b.cfg.Collection(entry.Collection); ok {
		candidates = append(candidates, col.Layout)
	}
	candidates = append(candidates, defaultSingleLayout, baseLayout)

	for _, name := range candidates {
		if name == "" {
			continue
		}
		if templates.Lookup(name) != nil {
			return name, nil
		}
		b.logger.Warn().Str("layout", name).Str("entry", entry.ID).Msg("layout not found, falling back")
	}
	return "", fmt.Errorf("no usable layout for %s: even %s is missing", entry.SourcePath, baseLayout)
}

// entryPage is the template context for a single rendered entry.
type entryPage struct {
	Site        *SiteData
	Entry       *content.Entry
	Content     template.HTML
	Headings    []markdown.Heading
	Excerpt     string
	ReadingTime int
	Related     []*content.Entry
}

func (b *Builder) writeEntry(templates *template.Template, site *SiteData, lib *content.Library, entry *content.Entry) error {
	layout, err := b.resolveLayout(templates, entry)
	if err != nil {
		return err
	}

	doc, err := lib.Render(entry)
	if err != nil {
		return err
	}

	related, err := lib.GetEntries(entry.Related)
	if err != nil {
		return err
	}

	excerpt := entry.Description
	if excerpt == "" {
		excerpt = markdown.Truncate(doc.Excerpt, 240)
	}

	data := entryPage{
		Site:        site,
		Entry:       entry,
		Content:     doc.HTML,
		Headings:    doc.Headings,
		Excerpt:     excerpt,
		ReadingTime: doc.ReadingTime,
		Related:     related,
	}

	outPath := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(entry.Permalink()), "index.html")
	if err := b.writePage(templates, layout, outPath, data); err != nil {
		return err
	}
	b.logger.Debug().Str("path", outPath).Str("layout", layout).Msg("generated entry page")
	return nil
}

// writePage executes a named layout into a freshly created output file.
func (b *Builder) writePage(templates *template.Template, layout, outPath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", outPath, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := templates.ExecuteTemplate(out, layout, data); err != nil {
		out.Close()
		return fmt.Errorf("failed to execute layout %s for %s: %w", layout, outPath, err)
	}
	return out.Close()
}
