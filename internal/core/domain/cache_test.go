package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/internal/core/domain"
)

func TestCacheManifest_OrderedOperations(t *testing.T) {
	m := domain.NewManifest()
	m.Set("/c.html", &domain.CacheEntry{Path: "/c.html"})
	m.Set("/a.html", &domain.CacheEntry{Path: "/a.html"})
	m.Set("/b.html", &domain.CacheEntry{Path: "/b.html"})

	assert.Equal(t, []string{"/c.html", "/a.html", "/b.html"}, m.Paths())
	assert.Equal(t, 3, m.Len())

	// Overwriting keeps the original position.
	m.Set("/c.html", &domain.CacheEntry{Path: "/c.html", TTLSeconds: 60})
	assert.Equal(t, []string{"/c.html", "/a.html", "/b.html"}, m.Paths())
	got, ok := m.Get("/c.html")
	require.True(t, ok)
	assert.Equal(t, 60, got.TTLSeconds)

	assert.True(t, m.Delete("/a.html"))
	assert.False(t, m.Delete("/a.html"))
	assert.Equal(t, []string{"/c.html", "/b.html"}, m.Paths())

	var visited []string
	for path := range m.All() {
		visited = append(visited, path)
	}
	assert.Equal(t, []string{"/c.html", "/b.html"}, visited)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Paths())
}

func TestCacheManifest_ZeroValueSet(t *testing.T) {
	var m domain.CacheManifest
	m.Set("/x.html", &domain.CacheEntry{Path: "/x.html"})
	_, ok := m.Get("/x.html")
	assert.True(t, ok)
}

func TestCacheManifest_JSONPreservesOrder(t *testing.T) {
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	capDays := 365
	m := domain.NewManifest()
	m.Set("/zeta.html", &domain.CacheEntry{
		Path:          "/zeta.html",
		InputsHash:    "0123456789abcdef",
		Deps:          []string{"/src/layout.tmpl"},
		Tags:          []string{"page", "blog"},
		PublishedAt:   &published,
		RenderedAt:    published.Add(time.Hour),
		TTLSeconds:    3600,
		MaxAgeCapDays: &capDays,
	})
	m.Set("/alpha.html", &domain.CacheEntry{
		Path:       "/alpha.html",
		InputsHash: "fedcba9876543210",
		Deps:       []string{},
		Tags:       []string{"page"},
		RenderedAt: published,
		TTLSeconds: 21600,
	})

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), "/zeta.html"), strings.Index(string(data), "/alpha.html"))
	assert.NotContains(t, string(data), `"tags":["page"],"publishedAt"`)

	decoded := domain.NewManifest()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, m, decoded)
}

func TestCacheManifest_UnmarshalEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPaths []string
		wantErr   bool
	}{
		{name: "empty entries", input: `{"entries":{}}`, wantPaths: []string{}},
		{name: "null entries", input: `{"entries":null}`, wantPaths: []string{}},
		{name: "missing entries", input: `{}`, wantPaths: []string{}},
		{name: "unknown field ignored", input: `{"schemaVersion":2,"entries":{"/b.html":{"path":"/b.html"},"/a.html":{"path":"/a.html"}}}`, wantPaths: []string{"/b.html", "/a.html"}},
		{name: "not an object", input: `[]`, wantErr: true},
		{name: "entries not an object", input: `{"entries":[]}`, wantErr: true},
		{name: "bad entry", input: `{"entries":{"/a.html":{"ttlSeconds":"x"}}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.NewManifest()
			err := json.Unmarshal([]byte(tt.input), m)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaths, append([]string{}, m.Paths()...))
		})
	}
}

func TestCacheEntry_OmitsUnsetOptionalFields(t *testing.T) {
	data, err := json.Marshal(domain.CacheEntry{Path: "/a.html"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "publishedAt")
	assert.NotContains(t, string(data), "maxAgeCapDays")
	assert.Contains(t, string(data), `"renderedAt"`)
}
