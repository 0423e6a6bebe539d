package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/internal/adapters/watcher"
)

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/site/blog/post.md")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/site/blog/post.md"}, receivedPaths)
	})
}

func TestDebouncer_Add_CoalescesAndDeduplicates(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/site/layout.tmpl")
		time.Sleep(50 * time.Millisecond)
		d.Add("/site/about.md")
		time.Sleep(50 * time.Millisecond)
		d.Add("/site/layout.tmpl")

		time.Sleep(90 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 0, callCount, "window restarts on every Add")

		time.Sleep(20 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/site/about.md", "/site/layout.tmpl"}, receivedPaths)
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/a.md")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		d.Add("/b.md")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, [][]string{{"/a.md"}, {"/b.md"}}, batches)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(time.Hour, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/a.md")
		d.Flush()

		require.Equal(t, 1, callCount, "flush runs the callback synchronously")
		assert.Equal(t, []string{"/a.md"}, receivedPaths)

		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Equal(t, 1, callCount, "flushed paths are not delivered again")
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	called := false
	d := watcher.NewDebouncer(time.Second, func([]string) { called = true })

	d.Flush()

	assert.False(t, called)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/a.md")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
