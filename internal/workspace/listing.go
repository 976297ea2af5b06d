// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/folio/pkg/types"
)

// Entry summarises one content file for listings.
type Entry struct {
	Slug  string
	Path  string
	Title string
	Date  string
	Tags  []string
}

// List returns kind's files in state, sorted by file name. A file whose
// frontmatter cannot be read is listed under its slug alone.
func (w *Workspace) List(kind types.Kind, state types.State) ([]Entry, error) {
	dir := w.Dir(kind, state)
	stems, err := markdownStems(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(stems))
	for _, stem := range stems {
		e := Entry{Slug: stem, Path: filepath.Join(dir, stem+".md"), Title: stem}
		if fm, err := readHeader(e.Path); err == nil {
			if fm.Title != "" {
				e.Title = fm.Title
			}
			e.Date = fm.Date
			e.Tags = fm.Tags
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Tags returns every tag used in drafts or published items of any kind,
// sorted and deduplicated.
func (w *Workspace) Tags() ([]string, error) {
	seen := make(map[string]bool)
	for _, kind := range types.Kinds {
		for _, state := range []types.State{types.StatePublished, types.StateDraft} {
			entries, err := w.List(kind, state)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				for _, t := range e.Tags {
					seen[t] = true
				}
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

// Counts is the number of markdown files per kind and state.
type Counts map[types.Kind]map[types.State]int

// Counts tallies the markdown files in every content directory.
func (w *Workspace) Counts() (Counts, error) {
	out := make(Counts, len(types.Kinds))
	for _, kind := range types.Kinds {
		out[kind] = make(map[types.State]int, 2)
		for _, state := range []types.State{types.StatePublished, types.StateDraft} {
			stems, err := markdownStems(w.Dir(kind, state))
			if err != nil {
				return nil, err
			}
			out[kind][state] = len(stems)
		}
	}
	return out, nil
}

func readHeader(path string) (types.Frontmatter, error) {
	var fm types.Frontmatter
	raw, err := os.ReadFile(path)
	if err != nil {
		return fm, fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := frontmatter.Parse(bytes.NewReader(raw), &fm); err != nil {
		return fm, fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}
	return fm, nil
}
