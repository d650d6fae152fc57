package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: scribe
  url: https://github.com/StevenPG/scribe
  description: This site's generator.
  tags: [go, ssg]
- name: homelab
  url: https://example.dev/homelab
  image: /images/homelab.png
`), 0o644))

	projects, err := LoadProjects(path)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "scribe", projects[0].Name)
	assert.Equal(t, []string{"go", "ssg"}, projects[0].Tags)
	assert.Equal(t, "/images/homelab.png", projects[1].Image)
}

func TestLoadProjectsMissingFile(t *testing.T) {
	projects, err := LoadProjects(filepath.Join(t.TempDir(), "projects.yaml"))
	require.NoError(t, err)
	assert.Nil(t, projects)
}

func TestLoadProjectsRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing url", "- name: thing\n"},
		{"bad url", "- name: thing\n  url: not-a-url\n"},
		{"missing name", "- url: https://example.dev\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "projects.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadProjects(path)
			assert.Error(t, err)
		})
	}
}
