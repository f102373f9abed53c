package store

import "finize/txextract/internal/taxonomy"

// MockTaxonomyStore is a mock implementation of TaxonomyStoreInterface for testing.
type MockTaxonomyStore struct {
	Taxonomy *taxonomy.Taxonomy
	Saved    []*taxonomy.Taxonomy

	// Error flags for testing error conditions
	LoadError error
	SaveError error
}

// Load returns the mock taxonomy, or the built-in one when none is set.
func (m *MockTaxonomyStore) Load() (*taxonomy.Taxonomy, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Taxonomy == nil {
		return taxonomy.Default(), nil
	}
	return m.Taxonomy, nil
}

// Save records the taxonomy.
func (m *MockTaxonomyStore) Save(tax *taxonomy.Taxonomy) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Saved = append(m.Saved, tax)
	return nil
}
