// Package taxonomy holds the read-only tables that drive extraction: the
// category keyword table, the categorizer priority order, the typo
// corrections, the number words and the merchant word lists.
//
// A Taxonomy is built once, either from the built-in defaults or from a
// models.TaxonomyConfig loaded by the store, and is never modified after
// construction, so a single instance can be shared by any number of
// goroutines.
package taxonomy

import (
	"fmt"
	"strings"
	"sync"

	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"
)

// TypoEntry is one misspelling and its canonical replacement.
type TypoEntry struct {
	Misspelling string
	Canonical   string
}

// Taxonomy is an immutable set of extraction tables.
type Taxonomy struct {
	categories  []models.CategoryConfig
	index       map[string]int
	priority    []string
	typos       []TypoEntry
	typoGroups  []models.TypoConfig
	numberWords map[string]int64
	generic     []string
	genericSet  map[string]struct{}
	fillers     []string
	fillerSet   map[string]struct{}
}

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
)

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := New(DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("built-in taxonomy is invalid: %v", err))
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

// DefaultConfig returns a fresh copy of the built-in tables in their YAML form.
func DefaultConfig() models.TaxonomyConfig {
	return models.TaxonomyConfig{
		Categories:   cloneCategories(defaultCategories),
		Priority:     append([]string(nil), defaultPriority...),
		Typos:        cloneTypos(defaultTypos),
		NumberWords:  cloneNumberWords(defaultNumberWords),
		GenericWords: append([]string(nil), defaultGenericWords...),
		FillerWords:  append([]string(nil), defaultFillerWords...),
	}
}

// New builds a Taxonomy from cfg. Keywords and words are lowercased.
// Sections left empty in cfg fall back to the built-in tables, except
// Priority which falls back to the category declaration order.
func New(cfg models.TaxonomyConfig) (*Taxonomy, error) {
	if len(cfg.Categories) == 0 {
		return nil, invalid("at least one category is required")
	}

	t := &Taxonomy{index: make(map[string]int, len(cfg.Categories))}

	for _, c := range cfg.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, invalid("category with empty name")
		}
		if name == models.CategoryGeneral {
			return nil, invalid(fmt.Sprintf("%q is reserved for the fallback category", name))
		}
		if _, dup := t.index[name]; dup {
			return nil, invalid(fmt.Sprintf("duplicate category %q", name))
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		t.index[name] = len(t.categories)
		t.categories = append(t.categories, models.CategoryConfig{Name: name, Keywords: keywords})
	}

	priority := cfg.Priority
	if len(priority) == 0 {
		for _, c := range t.categories {
			priority = append(priority, c.Name)
		}
	}
	seen := make(map[string]struct{}, len(priority))
	for _, name := range priority {
		if _, ok := t.index[name]; !ok {
			return nil, invalid(fmt.Sprintf("priority names unknown category %q", name))
		}
		if _, dup := seen[name]; dup {
			return nil, invalid(fmt.Sprintf("priority lists %q twice", name))
		}
		seen[name] = struct{}{}
		t.priority = append(t.priority, name)
	}

	typos := cfg.Typos
	if typos == nil {
		typos = defaultTypos
	}
	t.typoGroups = cloneTypos(typos)
	for _, group := range typos {
		canonical := strings.ToLower(group.Canonical)
		for _, m := range group.Misspellings {
			m = strings.ToLower(m)
			if m == "" {
				return nil, invalid(fmt.Sprintf("empty misspelling for %q", group.Canonical))
			}
			t.typos = append(t.typos, TypoEntry{Misspelling: m, Canonical: canonical})
		}
	}

	numberWords := cfg.NumberWords
	if numberWords == nil {
		numberWords = defaultNumberWords
	}
	t.numberWords = make(map[string]int64, len(numberWords))
	for w, v := range numberWords {
		if v <= 0 {
			return nil, invalid(fmt.Sprintf("number word %q must be positive", w))
		}
		t.numberWords[strings.ToLower(w)] = v
	}

	generic := cfg.GenericWords
	if generic == nil {
		generic = defaultGenericWords
	}
	t.generic, t.genericSet = wordSet(generic)

	fillers := cfg.FillerWords
	if fillers == nil {
		fillers = defaultFillerWords
	}
	t.fillers, t.fillerSet = wordSet(fillers)

	return t, nil
}

// Categories returns the category keyword table in declaration order.
func (t *Taxonomy) Categories() []models.CategoryConfig {
	return cloneCategories(t.categories)
}

// Keywords returns the keywords of one category, or nil if it is unknown.
func (t *Taxonomy) Keywords(category string) []string {
	i, ok := t.index[category]
	if !ok {
		return nil
	}
	return append([]string(nil), t.categories[i].Keywords...)
}

// Priority returns the category names in the order the categorizer tests them.
func (t *Taxonomy) Priority() []string {
	return append([]string(nil), t.priority...)
}

// Names returns every category name followed by General.
func (t *Taxonomy) Names() []string {
	names := make([]string, 0, len(t.categories)+1)
	for _, c := range t.categories {
		names = append(names, c.Name)
	}
	return append(names, models.CategoryGeneral)
}

// Has reports whether name is a category of the taxonomy or General.
func (t *Taxonomy) Has(name string) bool {
	if name == models.CategoryGeneral {
		return true
	}
	_, ok := t.index[name]
	return ok
}

// Typos returns the flattened typo correction table in application order.
func (t *Taxonomy) Typos() []TypoEntry {
	return append([]TypoEntry(nil), t.typos...)
}

// NumberWord returns the value of a number word such as "two" or "lakh".
func (t *Taxonomy) NumberWord(word string) (int64, bool) {
	v, ok := t.numberWords[word]
	return v, ok
}

// IsGeneric reports whether word is too vague to be used as a merchant.
func (t *Taxonomy) IsGeneric(word string) bool {
	_, ok := t.genericSet[word]
	return ok
}

// IsFiller reports whether word is a leading filler dropped from merchants.
func (t *Taxonomy) IsFiller(word string) bool {
	_, ok := t.fillerSet[word]
	return ok
}

// Config returns the taxonomy in its YAML form.
func (t *Taxonomy) Config() models.TaxonomyConfig {
	return models.TaxonomyConfig{
		Categories:   t.Categories(),
		Priority:     t.Priority(),
		Typos:        cloneTypos(t.typoGroups),
		NumberWords:  cloneNumberWords(t.numberWords),
		GenericWords: append([]string(nil), t.generic...),
		FillerWords:  append([]string(nil), t.fillers...),
	}
}

func invalid(reason string) error {
	return &parsererror.ValidationError{Subject: "taxonomy", Reason: reason}
}

func wordSet(words []string) ([]string, map[string]struct{}) {
	list := make([]string, 0, len(words))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := set[w]; dup {
			continue
		}
		set[w] = struct{}{}
		list = append(list, w)
	}
	return list, set
}

func cloneCategories(in []models.CategoryConfig) []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(in))
	for i, c := range in {
		out[i] = models.CategoryConfig{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

func cloneTypos(in []models.TypoConfig) []models.TypoConfig {
	out := make([]models.TypoConfig, len(in))
	for i, g := range in {
		out[i] = models.TypoConfig{Canonical: g.Canonical, Misspellings: append([]string(nil), g.Misspellings...)}
	}
	return out
}

func cloneNumberWords(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
