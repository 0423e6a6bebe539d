package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/cmd/quill/commands"
	"go.trai.ch/quill/internal/app"
	"go.trai.ch/quill/internal/build"
	"go.trai.ch/quill/internal/core/domain"
	"go.trai.ch/quill/internal/engine/invalidation"
	"go.trai.ch/quill/internal/engine/site"
)

type mockApp struct {
	buildFunc      func(ctx context.Context, opts app.BuildOptions) (site.Report, error)
	watchFunc      func(ctx context.Context) error
	invalidateFunc func(ctx context.Context, query string) (invalidation.Result, error)
	statusFunc     func(ctx context.Context) ([]app.EntryStatus, error)
	checkFunc      func(ctx context.Context) (*domain.SiteConfig, error)
	cleanFunc      func(ctx context.Context) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) (site.Report, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return site.Report{}, nil
}

func (m *mockApp) Watch(ctx context.Context) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx)
	}
	return nil
}

func (m *mockApp) Invalidate(ctx context.Context, query string) (invalidation.Result, error) {
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx, query)
	}
	return invalidation.Result{}, nil
}

func (m *mockApp) Status(ctx context.Context) ([]app.EntryStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx)
	}
	return nil, nil
}

func (m *mockApp) Check(ctx context.Context) (*domain.SiteConfig, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx)
	}
	return &domain.SiteConfig{}, nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) (site.Report, error) {
				captured = opts
				return site.Report{Rebuilt: []string{"/a.html"}, Skipped: []string{}}, nil
			},
		}

		out, err := execute(t, mock, "build", "--force")

		require.NoError(t, err)
		assert.True(t, captured.Force)
		assert.Contains(t, out, "rendered /a.html")
	})

	t.Run("json output", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(context.Context, app.BuildOptions) (site.Report, error) {
				return site.Report{Rebuilt: []string{"/a.html"}, Skipped: []string{"/b.html"}}, nil
			},
		}

		out, err := execute(t, mock, "--json", "build")

		require.NoError(t, err)
		var report site.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, []string{"/b.html"}, report.Skipped)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(context.Context, app.BuildOptions) (site.Report, error) {
				return site.Report{}, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "build")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Invalidate(t *testing.T) {
	var captured string
	mock := &mockApp{
		invalidateFunc: func(_ context.Context, query string) (invalidation.Result, error) {
			captured = query
			return invalidation.Result{InvalidatedCount: 1, InvalidatedPaths: []string{"/my posts/a.html"}}, nil
		},
	}

	out, err := execute(t, mock, "invalidate", "tag:blog", "path:/my posts")

	require.NoError(t, err)
	assert.Equal(t, `tag:blog "path:/my posts"`, captured)
	assert.Equal(t, []string{"tag:blog", "path:/my posts"}, invalidation.ParseQuery(captured))
	assert.Contains(t, out, "invalidated /my posts/a.html")
}

func TestCommands_InvalidateWithoutQuery(t *testing.T) {
	called := false
	mock := &mockApp{
		invalidateFunc: func(_ context.Context, query string) (invalidation.Result, error) {
			called = true
			assert.Empty(t, query)
			return invalidation.Result{ClearedAll: true}, nil
		},
	}

	_, err := execute(t, mock, "invalidate")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestJoinQuery(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, ""},
		{"plain terms", []string{"a", "b"}, "a b"},
		{"whitespace", []string{"tag:blog", "my post"}, `tag:blog "my post"`},
		{"double quotes inside", []string{`say "hi" there`}, `'say "hi" there'`},
		{"apostrophe without whitespace", []string{"it's"}, `"it's"`},
		{"apostrophe with whitespace", []string{"it's here"}, `"it's here"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commands.JoinQuery(tt.args)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, append([]string{}, tt.args...), invalidation.ParseQuery(got))
		})
	}
}

func TestJoinQuery_BothQuoteCharsFallBackToUnquoted(t *testing.T) {
	arg := `say "hi" it's`

	assert.Equal(t, "tag:blog "+arg, commands.JoinQuery([]string{"tag:blog", arg}))
}

func TestCommands_Status(t *testing.T) {
	next := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	mock := &mockApp{
		statusFunc: func(context.Context) ([]app.EntryStatus, error) {
			return []app.EntryStatus{
				{Path: "/a.html", Tags: []string{"page", "blog"}, NextRebuildAt: &next},
				{Path: "/old.html", Tags: []string{"page"}, Frozen: true},
				{Path: "/due.html", Tags: []string{"page"}, NextRebuildAt: &next, Expired: true},
			}, nil
		},
	}

	out, err := execute(t, mock, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "NEXT REBUILD")
	assert.Contains(t, out, "2025-06-01T13:00:00Z")
	assert.Contains(t, out, "page,blog")
	assert.Contains(t, out, "frozen")
	assert.Contains(t, out, "due")
}

func TestCommands_Check(t *testing.T) {
	mock := &mockApp{
		checkFunc: func(context.Context) (*domain.SiteConfig, error) {
			return &domain.SiteConfig{SrcDir: "/p/site", ISG: &domain.ISGConfig{Enabled: true}}, nil
		},
	}

	out, err := execute(t, mock, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "src:   /p/site")
	assert.Contains(t, out, "isg:   true")
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(context.Context) error {
			called = true
			return nil
		},
	}

	_, err := execute(t, mock, "clean")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestCommands_JSONHook(t *testing.T) {
	var got []bool
	cli := commands.New(&mockApp{})
	cli.OnJSON(func(enable bool) { got = append(got, enable) })
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"--json", "clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, []bool{true}, got)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")

	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
