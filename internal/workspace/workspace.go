// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace implements the authoring side of the content tree:
// locating files by partial slug, moving them between drafts and
// published, creating drafts, and managing images. It works on a plain
// directory, normally the s3fs mount of the content bucket.
package workspace

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/pdiddy/folio/pkg/types"
)

var (
	// ErrNotFound means no file matched a lookup.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous means more than one file matched a lookup.
	ErrAmbiguous = errors.New("multiple matches")

	// ErrExists means a create or move would overwrite an existing file.
	ErrExists = errors.New("already exists")
)

// Workspace is a content tree rooted at a local directory.
type Workspace struct {
	root   string
	bucket types.AWSConfig
	author string
	now    func() time.Time
}

// New returns a Workspace over root. bucket supplies the public image URL
// prefix; author is written into new drafts.
func New(root string, bucket types.AWSConfig, author string) *Workspace {
	return &Workspace{root: root, bucket: bucket, author: author, now: time.Now}
}

// Root returns the workspace directory.
func (w *Workspace) Root() string { return w.root }

// Dir returns the absolute directory of kind in state.
func (w *Workspace) Dir(kind types.Kind, state types.State) string {
	return filepath.Join(w.root, filepath.FromSlash(kind.Dir(state)))
}

// Locate finds the file matching query among kind's files in state.
func (w *Workspace) Locate(kind types.Kind, state types.State, query string) (string, error) {
	return Find(w.Dir(kind, state), query)
}
