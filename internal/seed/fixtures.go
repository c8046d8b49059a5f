package seed

import (
	_ "embed"
	"fmt"

	"chronicle/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yml
var fixturesYAML []byte

// FixturePost is one curated demo post loaded from fixtures.yml.
type FixturePost struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
}

// LoadFixtures parses the embedded curated posts and validates their
// categories so a bad fixture fails the seeder loudly.
func LoadFixtures() ([]FixturePost, error) {
	var doc struct {
		Posts []FixturePost `yaml:"posts"`
	}
	if err := yaml.Unmarshal(fixturesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, p := range doc.Posts {
		if p.Title == "" || p.Content == "" {
			return nil, fmt.Errorf("fixture %d: title and content are required", i)
		}
		if !models.ValidCategory(p.Category) {
			return nil, fmt.Errorf("fixture %d: unknown category %q", i, p.Category)
		}
	}
	return doc.Posts, nil
}
