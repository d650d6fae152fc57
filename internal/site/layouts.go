package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/StevenPG/scribe/internal/markdown"
)

const baseLayout = "base.html"

// templateFuncs are available in every layout.
var templateFuncs = template.FuncMap{
	"formatDate": func(layout string, t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	},
	"truncate": markdown.Truncate,
	"lower":    strings.ToLower,
}

// loadLayouts parses every .html file under dir. base.html and the partials
// directory are parsed first so page layouts can reference their definitions,
// and home.html goes last so its block overrides win.
func loadLayouts(dir string) (*template.Template, error) {
	var layoutFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			layoutFiles = append(layoutFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in %s: %w", dir, err)
	}

	var basePath, homePath string
	var partials, others []string
	for _, f := range layoutFiles {
		switch {
		case filepath.Base(f) == baseLayout && filepath.Dir(f) == dir:
			basePath = f
		case strings.HasPrefix(filepath.Dir(f), filepath.Join(dir, "partials")):
			partials = append(partials, f)
		case filepath.Base(f) == "home.html" && filepath.Dir(f) == dir:
			homePath = f
		default:
			others = append(others, f)
		}
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found in layouts directory %s", baseLayout, dir)
	}

	templates := template.New(baseLayout).Funcs(templateFuncs)
	if templates, err = templates.ParseFiles(append([]string{basePath}, partials...)...); err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}
	if len(others) > 0 {
		if templates, err = templates.ParseFiles(others...); err != nil {
			return nil, fmt.Errorf("failed to parse page layouts: %w", err)
		}
	}
	if homePath != "" {
		if templates, err = templates.ParseFiles(homePath); err != nil {
			return nil, fmt.Errorf("failed to parse home.html: %w", err)
		}
	}

	return templates, nil
}
