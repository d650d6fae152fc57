package content

import (
	"fmt"
	"strings"
)

// Reference is a cross-entry pointer in "collection/slug" form, as written
// in front matter (for example related: ["posts/gateway-api-basics"]).
type Reference struct {
	Collection string
	Slug       string
}

// ParseReference parses the "collection/slug" string form.
func ParseReference(s string) (Reference, error) {
	collection, slug, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || collection == "" || slug == "" {
		return Reference{}, fmt.Errorf("invalid entry reference %q: want collection/slug", s)
	}
	return Reference{Collection: collection, Slug: slug}, nil
}

func (r Reference) String() string {
	return r.Collection + "/" + r.Slug
}
