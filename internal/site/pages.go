package site

import (
	"fmt"
	"html/template"
	"path/filepath"
	"sort"

	"github.com/StevenPG/scribe/internal/content"
)

// listPage is the template context for paginated collection listings.
type listPage struct {
	Site       *SiteData
	Collection string
	Title      string
	Entries    []*content.Entry
	Page       int // 1-based
	TotalPages int
	PrevURL    string // empty on the first page
	NextURL    string // empty on the last page
}

// tagPage is the template context for a single tag listing.
type tagPage struct {
	Site    *SiteData
	Tag     string
	Entries []*content.Entry
}

// writeSitePages generates the homepage, collection lists, tag pages, and
// the projects page. It returns the number of pages written.
func (b *Builder) writeSitePages(templates *template.Template, site *SiteData, lib *content.Library) (int, error) {
	pages := 0

	// Homepage is mandatory, matching the layouts contract: a site without
	// home.html has nothing to serve at /.
	if templates.Lookup("home.html") == nil {
		return 0, fmt.Errorf("homepage layout home.html not found in %s", b.cfg.LayoutsDir)
	}
	homePath := filepath.Join(b.cfg.OutputDir, "index.html")
	if err := b.writePage(templates, "home.html", homePath, struct{ Site *SiteData }{site}); err != nil {
		return 0, err
	}
	pages++

	for _, name := range lib.Collections() {
		n, err := b.writeListPages(templates, site, name, lib.GetCollection(name))
		if err != nil {
			return 0, err
		}
		pages += n
	}

	n, err := b.writeTagPages(templates, site)
	if err != nil {
		return 0, err
	}
	pages += n

	if len(site.Projects) > 0 {
		if templates.Lookup("projects.html") == nil {
			b.logger.Warn().Msg("projects declared but projects.html layout missing, skipping projects page")
		} else {
			outPath := filepath.Join(b.cfg.OutputDir, "projects", "index.html")
			if err := b.writePage(templates, "projects.html", outPath, struct{ Site *SiteData }{site}); err != nil {
				return 0, err
			}
			pages++
		}
	}

	return pages, nil
}

// writeListPages paginates a collection under /<name>/ with page 2 onward at
// /<name>/page/<n>/. Layout lookup prefers list-<name>.html over list.html.
func (b *Builder) writeListPages(templates *template.Template, site *SiteData, name string, entries []*content.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	layout := "list-" + name + ".html"
	if templates.Lookup(layout) == nil {
		layout = "list.html"
	}
	if templates.Lookup(layout) == nil {
		b.logger.Warn().Str("collection", name).Msg("no list layout found, skipping list pages")
		return 0, nil
	}

	size := b.cfg.PageSize
	if size <= 0 {
		size = len(entries)
	}
	total := (len(entries) + size - 1) / size

	written := 0
	for page := 1; page <= total; page++ {
		start := (page - 1) * size
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}

		data := listPage{
			Site:       site,
			Collection: name,
			Title:      content.TitleFromStem(name),
			Entries:    entries[start:end],
			Page:       page,
			TotalPages: total,
		}
		if page > 1 {
			data.PrevURL = listPageURL(name, page-1)
		}
		if page < total {
			data.NextURL = listPageURL(name, page+1)
		}

		outPath := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(listPageURL(name, page)), "index.html")
		if err := b.writePage(templates, layout, outPath, data); err != nil {
			return 0, err
		}
		written++
	}
	return written, nil
}

func listPageURL(collection string, page int) string {
	if page <= 1 {
		return "/" + collection + "/"
	}
	return fmt.Sprintf("/%s/page/%d/", collection, page)
}

func (b *Builder) writeTagPages(templates *template.Template, site *SiteData) (int, error) {
	if len(site.Tags) == 0 {
		return 0, nil
	}
	if templates.Lookup("list-tag.html") == nil {
		b.logger.Warn().Msg("posts carry tags but list-tag.html layout missing, skipping tag pages")
		return 0, nil
	}

	tags := make([]string, 0, len(site.Tags))
	for tag := range site.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	written := 0
	for _, tag := range tags {
		data := tagPage{Site: site, Tag: tag, Entries: site.Tags[tag]}
		outPath := filepath.Join(b.cfg.OutputDir, "tags", content.Slugify(tag), "index.html")
		if err := b.writePage(templates, "list-tag.html", outPath, data); err != nil {
			return 0, err
		}
		written++
	}
	return written, nil
}
