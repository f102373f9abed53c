// Package store loads and saves the taxonomy YAML file.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"
	"finize/txextract/internal/taxonomy"

	"gopkg.in/yaml.v3"
)

// DefaultTaxonomyFile is looked up when no file name is configured.
const DefaultTaxonomyFile = "taxonomy.yaml"

// TaxonomyStoreInterface defines the interface for taxonomy storage.
// This allows for dependency injection and easier testing.
type TaxonomyStoreInterface interface {
	Load() (*taxonomy.Taxonomy, error)
	Save(tax *taxonomy.Taxonomy) error
}

// TaxonomyStore reads and writes a taxonomy YAML file.
type TaxonomyStore struct {
	File   string
	logger logging.Logger
}

// NewTaxonomyStore creates a store for file. An empty file name selects
// DefaultTaxonomyFile.
func NewTaxonomyStore(file string, logger logging.Logger) *TaxonomyStore {
	if file == "" {
		file = DefaultTaxonomyFile
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &TaxonomyStore{File: file, logger: logger}
}

// FindConfigFile looks for filename as an absolute path, then in the current
// directory, ./config/ and $HOME/.config/txextract/.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "txextract", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the taxonomy file. A missing file is not an error: the
// built-in taxonomy is returned instead.
func (s *TaxonomyStore) Load() (*taxonomy.Taxonomy, error) {
	path, err := FindConfigFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Taxonomy file not found, using built-in taxonomy",
				logging.Field{Key: logging.FieldFile, Value: s.File})
			return taxonomy.Default(), nil
		}
		return nil, fmt.Errorf("error resolving taxonomy file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var cfg models.TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:             path,
			ExpectedFormat:       "taxonomy YAML",
			ActualContentSnippet: snippet(data),
			Msg:                  "cannot decode YAML",
			Err:                  err,
		}
	}

	tax, err := taxonomy.New(cfg)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "taxonomy YAML",
			Msg:            err.Error(),
			Err:            err,
		}
	}

	s.logger.Info("Loaded taxonomy",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)})
	return tax, nil
}

// Save writes tax to the store's file, creating parent directories.
func (s *TaxonomyStore) Save(tax *taxonomy.Taxonomy) error {
	if tax == nil {
		return &parsererror.ValidationError{Subject: s.File, Reason: "no taxonomy to save"}
	}

	var buf bytes.Buffer
	buf.WriteString("# txextract taxonomy\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tax.Config()); err != nil {
		return fmt.Errorf("error encoding taxonomy: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error encoding taxonomy: %w", err)
	}

	if dir := filepath.Dir(s.File); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.File, buf.Bytes(), models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing taxonomy file: %w", err)
	}

	s.logger.Info("Saved taxonomy", logging.Field{Key: logging.FieldFile, Value: s.File})
	return nil
}

func snippet(data []byte) string {
	const limit = 40
	if len(data) > limit {
		return string(data[:limit])
	}
	return string(data)
}
