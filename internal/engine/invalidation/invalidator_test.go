package invalidation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/core/ports/mocks"
	"go.trai.ch/quill/internal/engine/invalidation"
	"go.uber.org/mock/gomock"
)

const cacheDir = "/site/.quill/cache"

func sampleManifest() *domain.CacheManifest {
	m := domain.NewManifest()
	m.Set("/blog/a.html", &domain.CacheEntry{Path: "/blog/a.html", Tags: []string{"page", "blog"}, RenderedAt: testNow})
	m.Set("/about.html", &domain.CacheEntry{Path: "/about.html", Tags: []string{"page"}, RenderedAt: testNow})
	m.Set("/blog/b.html", &domain.CacheEntry{Path: "/blog/b.html", Tags: []string{"page", "blog"}, RenderedAt: testNow})
	return m
}

func newInvalidator(t *testing.T) (*invalidation.Invalidator, *mocks.MockManifestStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockManifestStore(ctrl)
	return invalidation.New(store, mocks.NewMockLogger(ctrl)), store
}

func TestInvalidate_NoManifest(t *testing.T) {
	inv, store := newInvalidator(t)
	store.EXPECT().Load(cacheDir).Return(nil)

	result, err := inv.Invalidate(cacheDir, "tag:blog", testNow)

	require.NoError(t, err)
	assert.Equal(t, 0, result.InvalidatedCount)
	assert.Empty(t, result.InvalidatedPaths)
	assert.False(t, result.ClearedAll)
}

func TestInvalidate_ByTag(t *testing.T) {
	inv, store := newInvalidator(t)
	manifest := sampleManifest()
	store.EXPECT().Load(cacheDir).Return(manifest)
	store.EXPECT().Save(cacheDir, manifest).Return(nil)

	result, err := inv.Invalidate(cacheDir, "tag:blog", testNow)

	require.NoError(t, err)
	assert.Equal(t, 2, result.InvalidatedCount)
	assert.Equal(t, []string{"/blog/a.html", "/blog/b.html"}, result.InvalidatedPaths)
	assert.False(t, result.ClearedAll)
	assert.Equal(t, []string{"/about.html"}, manifest.Paths())
}

func TestInvalidate_OrAcrossTermsKeepsManifestOrder(t *testing.T) {
	inv, store := newInvalidator(t)
	manifest := sampleManifest()
	store.EXPECT().Load(cacheDir).Return(manifest)
	store.EXPECT().Save(cacheDir, manifest).Return(nil)

	result, err := inv.Invalidate(cacheDir, "path:/blog/b about", testNow)

	require.NoError(t, err)
	assert.Equal(t, []string{"/about.html", "/blog/b.html"}, result.InvalidatedPaths)
	assert.Equal(t, []string{"/blog/a.html"}, manifest.Paths())
}

func TestInvalidate_WarnsOncePerUnusableTerm(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown prefix", "author:x", `ignoring invalidation term with unknown prefix "author"`},
		{"malformed glob", "glob:/blog/[abc", `ignoring malformed glob "/blog/[abc": syntax error in pattern`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockManifestStore(ctrl)
			log := mocks.NewMockLogger(ctrl)
			inv := invalidation.New(store, log)
			manifest := sampleManifest()
			store.EXPECT().Load(cacheDir).Return(manifest)
			store.EXPECT().Save(cacheDir, manifest).Return(nil)
			log.EXPECT().Warn(tt.want).Times(1)

			result, err := inv.Invalidate(cacheDir, tt.query+" tag:blog", testNow)

			require.NoError(t, err)
			assert.Equal(t, []string{"/blog/a.html", "/blog/b.html"}, result.InvalidatedPaths)
			assert.Equal(t, []string{"/about.html"}, manifest.Paths())
		})
	}
}

func TestInvalidate_NoMatchStillSaves(t *testing.T) {
	inv, store := newInvalidator(t)
	manifest := sampleManifest()
	store.EXPECT().Load(cacheDir).Return(manifest)
	store.EXPECT().Save(cacheDir, manifest).Return(nil).Times(1)

	result, err := inv.Invalidate(cacheDir, "tag:nothing", testNow)

	require.NoError(t, err)
	assert.Equal(t, 0, result.InvalidatedCount)
	assert.Equal(t, []string{}, result.InvalidatedPaths)
	assert.Equal(t, 3, manifest.Len())
}

func TestInvalidate_BlankQueryClearsAll(t *testing.T) {
	for _, query := range []string{"", "   "} {
		t.Run("query="+query, func(t *testing.T) {
			inv, store := newInvalidator(t)
			manifest := sampleManifest()
			store.EXPECT().Load(cacheDir).Return(manifest)
			store.EXPECT().Save(cacheDir, manifest).DoAndReturn(func(_ string, m *domain.CacheManifest) error {
				assert.Equal(t, 0, m.Len())
				return nil
			})

			result, err := inv.Invalidate(cacheDir, query, testNow)

			require.NoError(t, err)
			assert.True(t, result.ClearedAll)
			assert.Equal(t, 3, result.InvalidatedCount)
			assert.Equal(t, []string{"/blog/a.html", "/about.html", "/blog/b.html"}, result.InvalidatedPaths)
		})
	}
}

func TestInvalidate_SaveErrorPropagates(t *testing.T) {
	inv, store := newInvalidator(t)
	saveErr := errors.New("disk full")
	store.EXPECT().Load(cacheDir).Return(sampleManifest())
	store.EXPECT().Save(cacheDir, gomock.Any()).Return(saveErr)

	_, err := inv.Invalidate(cacheDir, "tag:blog", testNow)

	require.ErrorIs(t, err, saveErr)
}
