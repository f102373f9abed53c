// Package models provides the data structures used throughout the application.
package models

// Category represents a transaction category
type Category struct {
	Name        string
	Description string
}

// CategoryConfig represents one category and its keywords in the taxonomy YAML file.
// Keyword order is significant: the merchant keyword scan walks it as written.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// TypoConfig maps a list of misspellings to the canonical spelling.
type TypoConfig struct {
	Canonical    string   `yaml:"canonical"`
	Misspellings []string `yaml:"misspellings"`
}

// TaxonomyConfig represents the structure of the taxonomy YAML file.
type TaxonomyConfig struct {
	Categories   []CategoryConfig `yaml:"categories"`
	Priority     []string         `yaml:"priority"`
	Typos        []TypoConfig     `yaml:"typos"`
	NumberWords  map[string]int64 `yaml:"number_words"`
	GenericWords []string         `yaml:"generic_words"`
	FillerWords  []string         `yaml:"filler_words"`
}
