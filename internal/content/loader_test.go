// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folio/internal/store"
	"github.com/pdiddy/folio/pkg/types"
)

func writePost(t *testing.T, root, dir, slug, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(dir), slug+".md")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestLoadAllSortsNewestFirstAndSkipsBroken(t *testing.T) {
	root := t.TempDir()
	dir := types.KindBlog.PublishedDir()
	writePost(t, root, dir, "old", "---\ntitle: Old\ndate: 2023-01-01\ntags: [go]\n---\n")
	writePost(t, root, dir, "new", "---\ntitle: New\ndate: 2025-01-01\ntags: [aws]\n---\n")
	writePost(t, root, dir, "broken", "---\ntitle: Broken\ndate: someday\n---\n")

	l := NewLoader(store.NewLocal(root), nil)
	items, err := l.LoadAll(context.Background(), types.KindBlog)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Slug)
	assert.Equal(t, "old", items[1].Slug)
	assert.Equal(t, []string{"aws", "go"}, AllTags(items))
}

func TestLoadMissing(t *testing.T) {
	l := NewLoader(store.NewLocal(t.TempDir()), nil)
	_, err := l.Load(context.Background(), types.KindBlog, "nope")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

// failingStore lists one slug and fails every read with err.
type failingStore struct{ err error }

func (f failingStore) List(context.Context, types.Kind) ([]string, error) {
	return []string{"x"}, nil
}

func (f failingStore) Read(context.Context, types.Kind, string) ([]byte, error) {
	return nil, f.err
}

func (f failingStore) Location(types.Kind, string) string { return "memory" }

func TestLoadAllBackendErrors(t *testing.T) {
	l := NewLoader(failingStore{err: errors.New("boom")}, nil)
	_, err := l.LoadAll(context.Background(), types.KindBlog)
	assert.EqualError(t, err, "boom")

	l = NewLoader(failingStore{err: store.ErrNotFound}, nil)
	items, err := l.LoadAll(context.Background(), types.KindBlog)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFilterByTagAndRecent(t *testing.T) {
	items := []types.Item{post("a", day(3), "go"), post("b", day(2)), post("c", day(1), "go")}
	assert.Equal(t, []string{"a", "c"}, slugs(FilterByTag(items, "go")))
	assert.Len(t, FilterByTag(items, ""), 3)
	assert.Empty(t, FilterByTag(items, "rust"))
	assert.Equal(t, []string{"a", "b"}, slugs(Recent(items, 2)))
	assert.Len(t, Recent(items, 10), 3)
}
