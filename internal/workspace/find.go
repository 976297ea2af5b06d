// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions caps the "did you mean" list on a failed lookup.
const maxSuggestions = 3

// Find resolves query to a markdown file in dir. An exact "<query>.md"
// wins; otherwise the single file whose name contains query is returned.
// No match wraps ErrNotFound, with close names suggested; several matches
// wrap ErrAmbiguous and name them all.
func Find(dir, query string) (string, error) {
	query = strings.TrimSuffix(strings.TrimSpace(query), ".md")
	if query == "" || strings.ContainsAny(query, `/\`) {
		return "", fmt.Errorf("%w: invalid name %q", ErrNotFound, query)
	}

	exact := filepath.Join(dir, query+".md")
	if info, err := os.Stat(exact); err == nil && info.Mode().IsRegular() {
		return exact, nil
	}

	stems, err := markdownStems(dir)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, stem := range stems {
		if strings.Contains(stem, query) {
			matches = append(matches, stem)
		}
	}

	switch len(matches) {
	case 1:
		return filepath.Join(dir, matches[0]+".md"), nil
	case 0:
		var hint string
		if s := suggest(query, stems); len(s) > 0 {
			hint = " (did you mean " + strings.Join(s, ", ") + "?)"
		}
		return "", fmt.Errorf("%w: %q in %s%s", ErrNotFound, query, dir, hint)
	default:
		return "", fmt.Errorf("%w for %q: %s", ErrAmbiguous, query, strings.Join(matches, ", "))
	}
}

// markdownStems returns the sorted names, without extension, of the *.md
// files directly in dir. A missing directory has none.
func markdownStems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var stems []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(stems)
	return stems, nil
}

// suggest returns up to maxSuggestions names that fuzzily match query.
func suggest(query string, stems []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(query, stems)
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
