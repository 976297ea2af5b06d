// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/folio/pkg/types"
)

// Local reads content from a directory laid out like the bucket:
// <root>/blog/posts/*.md, <root>/projects/published/*.md.
type Local struct {
	root string
}

// NewLocal returns a Store rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// List returns the stems of *.md files directly under the kind's published
// directory. A missing directory yields an empty list.
func (l *Local) List(ctx context.Context, kind types.Kind) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Join(l.root, filepath.FromSlash(kind.PublishedDir()))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), markdownExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), markdownExt))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Read returns the file contents for slug.
func (l *Local) Read(ctx context.Context, kind types.Kind, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	p := l.Location(kind, slug)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}

// Location returns the filesystem path of the item.
func (l *Local) Location(kind types.Kind, slug string) string {
	return filepath.Join(l.root, filepath.FromSlash(objectKey(kind, slug)))
}
