// Package config loads site configuration and the static project list.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Author describes the site owner shown on about/author surfaces.
type Author struct {
	Name   string `mapstructure:"name"`
	Bio    string `mapstructure:"bio"`
	Avatar string `mapstructure:"avatar"`
}

// Collection declares a named content collection and its loading rules.
type Collection struct {
	Name     string   `mapstructure:"name"`
	Dir      string   `mapstructure:"dir"`      // relative to ContentDir, defaults to Name
	Layout   string   `mapstructure:"layout"`   // default layout for entries of this collection
	Required []string `mapstructure:"required"` // front matter fields that must be present
	Feed     bool     `mapstructure:"feed"`     // include in the RSS feed
}

// Config is the singleton site record, read once at startup.
type Config struct {
	Title       string            `mapstructure:"title"`
	Description string            `mapstructure:"description"`
	BaseURL     string            `mapstructure:"baseURL"`
	Locale      string            `mapstructure:"locale"`
	Author      Author            `mapstructure:"author"`
	Social      map[string]string `mapstructure:"social"`

	ContentDir   string `mapstructure:"contentDir"`
	LayoutsDir   string `mapstructure:"layoutsDir"`
	StaticDir    string `mapstructure:"staticDir"`
	OutputDir    string `mapstructure:"outputDir"`
	ProjectsFile string `mapstructure:"projectsFile"`

	PageSize    int  `mapstructure:"pageSize"`
	BuildDrafts bool `mapstructure:"buildDrafts"`

	Collections []Collection `mapstructure:"collections"`
}

// Load reads configuration from the given file (or ./scribe.yaml when empty),
// applying defaults and SCRIBE_* environment overrides.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("title", "A Scribe Site")
	v.SetDefault("description", "")
	v.SetDefault("baseURL", "")
	v.SetDefault("locale", "en")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("projectsFile", "projects.yaml")
	v.SetDefault("pageSize", 10)
	v.SetDefault("buildDrafts", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("scribe")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SCRIBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// An explicitly set file that is missing comes back as a path error,
		// not viper's ConfigFileNotFoundError.
		if cfgFile != "" && os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file in the search path is fine; defaults and env cover
		// everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if len(cfg.Collections) == 0 {
		cfg.Collections = defaultCollections()
	}
	for i := range cfg.Collections {
		c := &cfg.Collections[i]
		if c.Name == "" {
			return Config{}, fmt.Errorf("collection %d has no name", i)
		}
		if c.Dir == "" {
			c.Dir = c.Name
		}
	}

	return cfg, nil
}

// defaultCollections matches the conventional blog layout: dated posts plus
// author/about pages.
func defaultCollections() []Collection {
	return []Collection{
		{Name: "posts", Dir: "posts", Layout: "single-post.html", Required: []string{"title", "date"}, Feed: true},
		{Name: "authors", Dir: "authors", Layout: "single.html", Required: []string{"title"}},
	}
}

// Collection returns the declared collection with the given name.
func (c Config) Collection(name string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return Collection{}, false
}
