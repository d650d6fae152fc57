package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a collection or slug lookup has no match.
var ErrNotFound = errors.New("entry not found")

// ErrDuplicateSlug is returned when two entries in a collection resolve to
// the same slug; the site could only route one of them.
var ErrDuplicateSlug = errors.New("duplicate slug")

// ValidationError reports front matter that does not satisfy the collection's
// declared schema.
type ValidationError struct {
	Path   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: front matter missing required fields %v", e.Path, e.Fields)
}
