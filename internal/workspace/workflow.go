// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/folio/pkg/types"
)

// Publish moves the draft matching query into kind's published directory
// and returns its new path.
func (w *Workspace) Publish(kind types.Kind, query string) (string, error) {
	return w.move(kind, types.StateDraft, types.StatePublished, query)
}

// Unpublish moves the published item matching query back to drafts and
// returns its new path.
func (w *Workspace) Unpublish(kind types.Kind, query string) (string, error) {
	return w.move(kind, types.StatePublished, types.StateDraft, query)
}

// move resolves query in the from directory and renames the file into the
// to directory under the same name. Lookup failures and an occupied
// destination are reported before anything is touched.
func (w *Workspace) move(kind types.Kind, from, to types.State, query string) (string, error) {
	src, err := w.Locate(kind, from, query)
	if err != nil {
		return "", err
	}

	dstDir := w.Dir(kind, to)
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", dst, err)
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dstDir, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("moving %s to %s: %w", src, dst, err)
	}
	return dst, nil
}
