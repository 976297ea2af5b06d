// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/folio/internal/logging"
	"github.com/pdiddy/folio/internal/store"
	"github.com/pdiddy/folio/pkg/types"
)

// Loader reads items through a Store. It keeps no state between calls:
// every Load and LoadAll goes back to the backend.
type Loader struct {
	store store.Store
	log   logging.Logger
}

// NewLoader returns a Loader over s. A nil log discards messages.
func NewLoader(s store.Store, log logging.Logger) *Loader {
	if log == nil {
		log = logging.NoOp()
	}
	return &Loader{store: s, log: log}
}

// Load reads and parses one item. Missing items wrap store.ErrNotFound.
func (l *Loader) Load(ctx context.Context, kind types.Kind, slug string) (types.Item, error) {
	raw, err := l.store.Read(ctx, kind, slug)
	if err != nil {
		return types.Item{}, err
	}
	return Parse(kind, slug, raw)
}

// LoadAll reads every published item of kind, newest first. Items that
// fail to parse, or that disappear between listing and reading, are logged
// and left out. Backend failures are returned.
func (l *Loader) LoadAll(ctx context.Context, kind types.Kind) ([]types.Item, error) {
	slugs, err := l.store.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	l.log.Debug("listed content", "kind", kind, "count", len(slugs))

	items := make([]types.Item, 0, len(slugs))
	for _, slug := range slugs {
		raw, err := l.store.Read(ctx, kind, slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				l.log.Warn("content vanished while loading", "kind", kind, "slug", slug)
				continue
			}
			return nil, err
		}
		item, err := Parse(kind, slug, raw)
		if err != nil {
			l.log.Warn("skipping unparsable content", "location", l.store.Location(kind, slug), "error", err)
			continue
		}
		items = append(items, item)
	}

	SortByDate(items)
	return items, nil
}
