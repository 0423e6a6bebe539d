package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"time"
)

// CacheEntry records what a page was rendered from and when.
type CacheEntry struct {
	// Path is the output path of the page, duplicated from the manifest key.
	Path string `json:"path"`
	// InputsHash covers the page content, front matter and every dependency file.
	InputsHash string `json:"inputsHash"`
	// Deps are the absolute template and partial paths in discovery order.
	Deps []string `json:"deps"`
	// Tags label the entry for invalidation queries.
	Tags []string `json:"tags"`
	// PublishedAt is the content publish date, if known.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	// RenderedAt is the instant of the last successful render.
	RenderedAt time.Time `json:"renderedAt"`
	// TTLSeconds is the effective TTL computed at render time.
	TTLSeconds int `json:"ttlSeconds"`
	// MaxAgeCapDays freezes the entry once the content is older than this many days.
	MaxAgeCapDays *int `json:"maxAgeCapDays,omitempty"`
}

// CacheManifest maps page paths to cache entries and remembers insertion order,
// which is kept in memory and in the serialized form.
//
// A manifest is not safe for concurrent mutation. Concurrent Get calls are fine
// as long as no Set or Delete runs at the same time.
type CacheManifest struct {
	order   []string
	entries map[string]*CacheEntry
}

// NewManifest returns an empty manifest.
func NewManifest() *CacheManifest {
	return &CacheManifest{entries: make(map[string]*CacheEntry)}
}

// Len returns the number of entries.
func (m *CacheManifest) Len() int {
	return len(m.entries)
}

// Get returns the entry stored under path.
func (m *CacheManifest) Get(path string) (*CacheEntry, bool) {
	e, ok := m.entries[path]
	return e, ok
}

// Set stores entry under path. A new path is appended to the iteration order,
// an existing one keeps its position.
func (m *CacheManifest) Set(path string, entry *CacheEntry) {
	if m.entries == nil {
		m.entries = make(map[string]*CacheEntry)
	}
	if _, ok := m.entries[path]; !ok {
		m.order = append(m.order, path)
	}
	m.entries[path] = entry
}

// Delete removes path and reports whether it was present.
func (m *CacheManifest) Delete(path string) bool {
	if _, ok := m.entries[path]; !ok {
		return false
	}
	delete(m.entries, path)
	if i := slices.Index(m.order, path); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true
}

// Clear removes every entry.
func (m *CacheManifest) Clear() {
	m.order = nil
	m.entries = make(map[string]*CacheEntry)
}

// Paths returns the keys in iteration order.
func (m *CacheManifest) Paths() []string {
	return slices.Clone(m.order)
}

// All iterates entries in insertion order.
func (m *CacheManifest) All() iter.Seq2[string, *CacheEntry] {
	return func(yield func(string, *CacheEntry) bool) {
		for _, path := range m.order {
			if !yield(path, m.entries[path]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the manifest as {"entries": {...}} preserving insertion order.
func (m *CacheManifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"entries":{`)
	for i, path := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(path)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.entries[path])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a manifest, keeping the key order of the document.
// Unknown top-level fields are ignored.
func (m *CacheManifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	decoded := NewManifest()
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		if key != "entries" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
			continue
		}
		if err := decodeEntries(dec, decoded); err != nil {
			return err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	*m = *decoded
	return nil
}

func decodeEntries(dec *json.Decoder, into *CacheManifest) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("manifest entries: expected object, got %v", tok)
	}
	for dec.More() {
		path, err := readKey(dec)
		if err != nil {
			return err
		}
		var entry CacheEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("manifest entry %q: %w", path, err)
		}
		into.Set(path, &entry)
	}
	return expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("manifest: expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("manifest: expected %q, got %v", want, tok)
	}
	return nil
}
