// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store resolves published content items to raw markdown on either
// a local directory tree or an S3 bucket. Callers see the same Store
// contract for both backends; nothing is cached and every call goes to the
// backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/pdiddy/folio/pkg/types"
)

// ErrNotFound is returned by Read when no item exists for the slug.
var ErrNotFound = errors.New("content not found")

const markdownExt = ".md"

// Store lists and reads published content of one kind.
type Store interface {
	// List returns the sorted slugs of all published items of kind.
	List(ctx context.Context, kind types.Kind) ([]string, error)

	// Read returns the raw markdown of one item. It returns an error
	// wrapping ErrNotFound when the item does not exist.
	Read(ctx context.Context, kind types.Kind, slug string) ([]byte, error)

	// Location describes where an item lives, for logs and messages.
	Location(kind types.Kind, slug string) string
}

// New returns the backend selected by cfg.Source.
func New(cfg types.StoreConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}
	switch cfg.Source {
	case types.BackendS3:
		return NewS3(cfg.AWSConfig)
	default:
		return NewLocal(cfg.ContentDir), nil
	}
}

// objectKey is the slash-separated location of an item relative to the
// content root. Local paths and S3 keys share it.
func objectKey(kind types.Kind, slug string) string {
	return path.Join(kind.PublishedDir(), slug+markdownExt)
}

// checkSlug rejects slugs that could escape the kind's directory. They can
// never name a stored item, so they read as not found. Dots inside a name
// are fine; only a separator lets ".." climb out.
func checkSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("%w: invalid slug %q", ErrNotFound, slug)
	}
	return nil
}
