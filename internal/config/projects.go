package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Project is a static descriptor for the portfolio/projects page.
type Project struct {
	Name        string   `yaml:"name" validate:"required"`
	URL         string   `yaml:"url" validate:"required,url"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
}

// LoadProjects reads the project list from path. A missing file is not an
// error; sites without a portfolio simply have no projects page.
func LoadProjects(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projects file %s: %w", path, err)
	}

	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects file %s: %w", path, err)
	}

	validate := validator.New()
	for i, p := range projects {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid project %d (%q): %w", i, p.Name, err)
		}
	}

	return projects, nil
}
