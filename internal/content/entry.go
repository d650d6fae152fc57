package content

import (
	"fmt"
	"time"
)

// Metadata is the decoded front matter block. Date fields stay strings here
// because authors write them in several layouts; parsing happens at load.
type Metadata struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Slug        string         `yaml:"slug"`
	Date        string         `yaml:"date"`
	Updated     string         `yaml:"updated"`
	Tags        []string       `yaml:"tags"`
	Featured    bool           `yaml:"featured"`
	Draft       bool           `yaml:"draft"`
	Image       string         `yaml:"image"`
	Layout      string         `yaml:"layout"`
	Related     []string       `yaml:"related"`
	Extra       map[string]any `yaml:",inline"`
}

// Entry is a loaded content document: one markdown file of a collection.
type Entry struct {
	ID         string // collection-relative path without extension
	Slug       string
	Collection string

	Title       string
	Description string
	Date        time.Time
	Updated     time.Time
	Tags        []string
	Featured    bool
	Draft       bool
	Image       string
	Layout      string
	Related     []Reference
	Extra       map[string]any

	Body       []byte // markdown body without front matter
	SourcePath string
}

// Permalink is the output URL path for the entry, directory-style so each
// entry renders to <permalink>/index.html.
func (e *Entry) Permalink() string {
	return "/" + e.Collection + "/" + e.Slug + "/"
}

// dateLayouts are the accepted front matter date formats, most specific
// first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a front matter date string. Empty input yields the zero
// time without error.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q: use YYYY-MM-DD or RFC3339", s)
}
