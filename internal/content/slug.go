package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify converts s into a URL-safe slug: lowercase, alphanumerics kept,
// every other run of characters collapsed into a single dash.
func Slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// TitleFromStem derives a display title from a file stem when the front
// matter declares none, e.g. "my-first_post" -> "My First Post".
func TitleFromStem(stem string) string {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(stem, "-", " "), "_", " ")
	return cases.Title(language.English).String(cleaned)
}
