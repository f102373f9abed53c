package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"
	"finize/txextract/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petsTaxonomy = `categories:
  - name: Pets
    keywords: [vet, petsmart]
  - name: Garden
    keywords: [seeds, nursery]
priority: [Garden, Pets]
typos:
  - canonical: petsmart
    misspellings: [petsmrt]
`

func TestLoad_SubstitutedTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petsTaxonomy), 0600))

	logger := logging.NewMockLogger()
	tax, err := NewTaxonomyStore(path, logger).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Garden", "Pets"}, tax.Priority())
	assert.Equal(t, []string{"vet", "petsmart"}, tax.Keywords("Pets"))
	assert.Equal(t, []taxonomy.TypoEntry{{Misspelling: "petsmrt", Canonical: "petsmart"}}, tax.Typos())
	assert.True(t, logger.HasEntry("INFO", "Loaded taxonomy"))
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	tax, err := NewTaxonomyStore(filepath.Join(t.TempDir(), "absent.yaml"), nil).Load()
	require.NoError(t, err)
	assert.Same(t, taxonomy.Default(), tax)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "BadYAML", content: "categories: [\n"},
		{name: "InvalidTaxonomy", content: "categories:\n  - name: Pets\npriority: [Garden]\n"},
		{name: "NoCategories", content: "priority: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := NewTaxonomyStore(path, nil).Load()
			var formatErr *parsererror.InvalidFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, path, formatErr.FilePath)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taxonomy.yaml")
	s := NewTaxonomyStore(path, nil)

	require.NoError(t, s.Save(taxonomy.Default()))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, taxonomy.Default().Config(), loaded.Config())
}

func TestSave_Nil(t *testing.T) {
	err := NewTaxonomyStore(filepath.Join(t.TempDir(), "t.yaml"), nil).Save(nil)
	var vErr *parsererror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestNewTaxonomyStore_DefaultFile(t *testing.T) {
	assert.Equal(t, DefaultTaxonomyFile, NewTaxonomyStore("", nil).File)
}

func TestMockTaxonomyStore(t *testing.T) {
	var _ TaxonomyStoreInterface = (*MockTaxonomyStore)(nil)
	var _ TaxonomyStoreInterface = (*TaxonomyStore)(nil)

	mock := &MockTaxonomyStore{}
	tax, err := mock.Load()
	require.NoError(t, err)
	assert.Same(t, taxonomy.Default(), tax)
	require.NoError(t, mock.Save(tax))
	assert.Len(t, mock.Saved, 1)

	custom, err := taxonomy.New(models.TaxonomyConfig{Categories: []models.CategoryConfig{{Name: "Pets"}}})
	require.NoError(t, err)
	mock = &MockTaxonomyStore{Taxonomy: custom, SaveError: errors.New("disk full")}
	tax, err = mock.Load()
	require.NoError(t, err)
	assert.Same(t, custom, tax)
	assert.EqualError(t, mock.Save(tax), "disk full")

	_, err = (&MockTaxonomyStore{LoadError: errors.New("boom")}).Load()
	assert.Error(t, err)
}
