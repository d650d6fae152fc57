package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Gateway API: Testing & Tips", "gateway-api-testing-tips"},
		{"  spaced  out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcode Stuff", "n-code-stuff"},
		{"2024 Year In Review!", "2024-year-in-review"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestTitleFromStem(t *testing.T) {
	assert.Equal(t, "My First Post", TitleFromStem("my-first_post"))
	assert.Equal(t, "About", TitleFromStem("about"))
}

func TestParseReference(t *testing.T) {
	ref, err := ParseReference("posts/my-post")
	require.NoError(t, err)
	assert.Equal(t, Reference{Collection: "posts", Slug: "my-post"}, ref)
	assert.Equal(t, "posts/my-post", ref.String())

	for _, bad := range []string{"", "posts", "posts/", "/slug"} {
		_, err := ParseReference(bad)
		assert.Error(t, err, "ParseReference(%q)", bad)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-03-04T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("March 4th, 2024")
	assert.Error(t, err)
}
