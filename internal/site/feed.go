package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/StevenPG/scribe/internal/content"
	"github.com/StevenPG/scribe/internal/markdown"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
	Description string `xml:"description,omitempty"`
}

// writeFeed emits rss.xml covering every collection declared with feed: true.
func (b *Builder) writeFeed(site *SiteData, lib *content.Library) error {
	var entries []*content.Entry
	for _, col := range b.cfg.Collections {
		if col.Feed {
			entries = append(entries, lib.GetCollection(col.Name)...)
		}
	}
	if len(entries) == 0 {
		return nil
	}
	// Collections arrive pre-sorted individually; the merged feed needs its
	// own newest-first pass.
	content.SortEntries(entries)

	channel := rssChannel{
		Title:       site.Config.Title,
		Link:        site.Config.BaseURL,
		Description: site.Config.Description,
		Language:    site.Config.Locale,
	}
	for _, e := range entries {
		item := rssItem{
			Title:       e.Title,
			Link:        absoluteURL(site.Config.BaseURL, e.Permalink()),
			GUID:        absoluteURL(site.Config.BaseURL, e.Permalink()),
			Description: e.Description,
		}
		if item.Description == "" {
			if doc, err := lib.Render(e); err == nil {
				item.Description = markdown.Truncate(doc.Excerpt, 240)
			}
		}
		if !e.Date.IsZero() {
			item.PubDate = e.Date.Format(time.RFC1123Z)
		}
		channel.Items = append(channel.Items, item)
	}

	return b.writeXML(filepath.Join(b.cfg.OutputDir, "rss.xml"), rssFeed{Version: "2.0", Channel: channel})
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap emits sitemap.xml for the homepage, list roots, and every
// entry page.
func (b *Builder) writeSitemap(site *SiteData, lib *content.Library) error {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(site.Config.BaseURL, "/")})

	for _, name := range lib.Collections() {
		entries := lib.GetCollection(name)
		if len(entries) == 0 {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(site.Config.BaseURL, "/"+name+"/")})
		for _, e := range entries {
			u := sitemapURL{Loc: absoluteURL(site.Config.BaseURL, e.Permalink())}
			switch {
			case !e.Updated.IsZero():
				u.LastMod = e.Updated.Format("2006-01-02")
			case !e.Date.IsZero():
				u.LastMod = e.Date.Format("2006-01-02")
			}
			set.URLs = append(set.URLs, u)
		}
	}

	return b.writeXML(filepath.Join(b.cfg.OutputDir, "sitemap.xml"), set)
}

func (b *Builder) writeXML(path string, v any) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	payload := []byte(xml.Header + string(data) + "\n")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	b.logger.Debug().Str("path", path).Msg("generated xml")
	return nil
}

func absoluteURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + path
}
