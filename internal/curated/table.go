// Package curated holds the hand-written meaning tables consulted before
// and after remote lookup. Two tables ship embedded in the binary; an
// operator may replace either with a YAML file of the same shape.
package curated

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/vocabmeanings/internal/domain"
)

//go:embed data/*.yaml
var dataFiles embed.FS

const (
	LocalName  = "local"
	ReviewName = "review"
)

// Option configures a Table at construction.
type Option func(*options)

type options struct {
	foldKeys bool
}

// FoldKeys normalizes keys with domain.NormalizeWord. Lookups are folded
// the same way, so "April" and "april" address the same definition.
func FoldKeys() Option {
	return func(o *options) { o.foldKeys = true }
}

// Table is an immutable word → definition mapping.
type Table struct {
	name     string
	fold     bool
	meanings map[string]string
}

// NewTable builds a table from a copy of meanings. Keys must be non-empty,
// values non-blank and free of the review marker. With FoldKeys, two keys
// folding to the same form are rejected.
func NewTable(name string, meanings map[string]string, opts ...Option) (*Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		name:     name,
		fold:     o.foldKeys,
		meanings: make(map[string]string, len(meanings)),
	}

	var errs []domain.FieldError
	originals := make(map[string]string, len(meanings))

	for _, key := range sortedKeys(meanings) {
		value := meanings[key]

		k := key
		if t.fold {
			k = domain.NormalizeWord(key)
		}

		switch {
		case strings.TrimSpace(k) == "":
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%q]", name, key), Message: "key must not be empty"})
			continue
		case strings.TrimSpace(value) == "":
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%q]", name, key), Message: "definition must not be empty"})
			continue
		case strings.Contains(value, domain.ReviewMarkerToken):
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("%s[%q]", name, key), Message: "definition must not carry the review marker"})
			continue
		}

		if prev, ok := originals[k]; ok {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("%s[%q]", name, key),
				Message: fmt.Sprintf("collides with %q", prev),
			})
			continue
		}
		originals[k] = key
		t.meanings[k] = value
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return t, nil
}

// Lookup returns the definition stored for key.
func (t *Table) Lookup(key string) (string, bool) {
	if t.fold {
		key = domain.NormalizeWord(key)
	}
	v, ok := t.meanings[key]
	return v, ok
}

func (t *Table) Len() int     { return len(t.meanings) }
func (t *Table) Name() string { return t.name }

// Keys returns the stored keys in sorted order.
func (t *Table) Keys() []string {
	return sortedKeys(t.meanings)
}

// Parse decodes a YAML mapping of word to definition.
// Duplicate keys are rejected by the decoder.
func Parse(name string, data []byte, opts ...Option) (*Table, error) {
	meanings := map[string]string{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &meanings); err != nil {
			return nil, fmt.Errorf("curated: parse %s table: %w", name, err)
		}
	}
	t, err := NewTable(name, meanings, opts...)
	if err != nil {
		return nil, fmt.Errorf("curated: %s table: %w", name, err)
	}
	return t, nil
}

// LoadFile reads a table from a YAML file on disk.
func LoadFile(name, path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("curated: read %s: %w", path, err)
	}
	return Parse(name, data, opts...)
}

// LocalMeanings returns the embedded local table, or the table at path if
// path is non-empty. Keys are folded.
func LocalMeanings(path string) (*Table, error) {
	return load(LocalName, "data/local_meanings.yaml", path, FoldKeys())
}

// ReviewMeanings returns the embedded review table, or the table at path
// if path is non-empty. Keys match the vocabulary word exactly.
func ReviewMeanings(path string) (*Table, error) {
	return load(ReviewName, "data/review_meanings.yaml", path)
}

func load(name, embedded, path string, opts ...Option) (*Table, error) {
	if path != "" {
		return LoadFile(name, path, opts...)
	}
	data, err := dataFiles.ReadFile(embedded)
	if err != nil {
		return nil, fmt.Errorf("curated: read embedded %s: %w", embedded, err)
	}
	return Parse(name, data, opts...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
