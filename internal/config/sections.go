package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HomeSection is one category block on the home page
type HomeSection struct {
	Key      string `yaml:"key"`
	Slug     string `yaml:"slug"`
	Limit    int    `yaml:"limit"`
	Featured bool   `yaml:"featured"`
}

// DefaultHomeSections is used when no sections file is configured
var DefaultHomeSections = []HomeSection{
	{Key: "economy", Slug: "economy", Limit: 4, Featured: true},
	{Key: "geopolitics", Slug: "geopolitics", Limit: 4, Featured: true},
	{Key: "research", Slug: "research", Limit: 3},
	{Key: "life_style", Slug: "life-style", Limit: 3, Featured: true},
	{Key: "interviews", Slug: "interviews", Limit: 3},
	{Key: "opinion", Slug: "opinion", Limit: 3},
}

type homeSectionsFile struct {
	Sections []HomeSection `yaml:"sections"`
}

// LoadHomeSections reads the home page section table from a YAML file.
// An empty path returns DefaultHomeSections.
func LoadHomeSections(path string) ([]HomeSection, error) {
	if path == "" {
		out := make([]HomeSection, len(DefaultHomeSections))
		copy(out, DefaultHomeSections)
		return out, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read home sections file: %w", err)
	}
	var file homeSectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse home sections file: %w", err)
	}
	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("home sections file %s has no sections", path)
	}
	return file.Sections, nil
}
