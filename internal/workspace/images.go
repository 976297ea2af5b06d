// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/folio/pkg/types"
)

// Image is an image file stored under images/<kind>/.
type Image struct {
	Kind types.Kind
	Name string
	Path string
	URL  string

	// Alt is the alt text used by Markdown.
	Alt string
}

// Markdown returns an image reference ready to paste into a post.
func (im Image) Markdown() string {
	return fmt.Sprintf("![%s](%s)", im.Alt, im.URL)
}

// ImageURL is the public bucket URL of an image named name for kind.
func (w *Workspace) ImageURL(kind types.Kind, name string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s/%s", w.bucket.Bucket, w.bucket.Region, kind.ImageDir(), name)
}

// AddImage copies src into kind's image directory. A non-empty name
// replaces the file stem and keeps src's extension. An existing image of
// the same name wraps ErrExists.
func (w *Workspace) AddImage(src string, kind types.Kind, name string) (Image, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Image{}, fmt.Errorf("reading %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return Image{}, fmt.Errorf("%s is not a regular file", src)
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	filename := base
	if name = strings.TrimSpace(name); name != "" {
		if strings.ContainsAny(name, `/\`) {
			return Image{}, fmt.Errorf("invalid image name %q", name)
		}
		filename = name + ext
	}

	dir := filepath.Join(w.root, filepath.FromSlash(kind.ImageDir()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Image{}, fmt.Errorf("creating %s: %w", dir, err)
	}
	dst := filepath.Join(dir, filename)
	if err := copyNew(src, dst, info); err != nil {
		return Image{}, err
	}

	return Image{
		Kind: kind,
		Name: filename,
		Path: dst,
		URL:  w.ImageURL(kind, filename),
		Alt:  strings.TrimSuffix(base, ext),
	}, nil
}

// Images lists the image files of the given kinds, or of every kind when
// none are given. Names are sorted within each kind.
func (w *Workspace) Images(kinds ...types.Kind) ([]Image, error) {
	if len(kinds) == 0 {
		kinds = types.Kinds
	}
	var out []Image
	for _, kind := range kinds {
		dir := filepath.Join(w.root, filepath.FromSlash(kind.ImageDir()))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, Image{
				Kind: kind,
				Name: n,
				Path: filepath.Join(dir, n),
				URL:  w.ImageURL(kind, n),
				Alt:  strings.TrimSuffix(n, filepath.Ext(n)),
			})
		}
	}
	return out, nil
}

// copyNew copies src to dst, refusing to replace an existing dst, and
// carries over the source modification time.
func copyNew(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}
