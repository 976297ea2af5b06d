// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"sort"

	"github.com/pdiddy/folio/pkg/types"
)

// DefaultRelatedLimit is the number of related items shown under a page.
const DefaultRelatedLimit = 5

// Related ranks the other items of a collection by how many tags they share
// with current, newest first among equal scores, and returns at most limit
// of them. current itself is never returned. limit <= 0 means
// DefaultRelatedLimit.
func Related(current types.Item, all []types.Item, limit int) []types.Item {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	want := make(map[string]bool, len(current.Tags))
	for _, t := range current.Tags {
		want[t] = true
	}

	type scored struct {
		item  types.Item
		score int
	}
	candidates := make([]scored, 0, len(all))
	for _, it := range all {
		if it.Kind == current.Kind && it.Slug == current.Slug {
			continue
		}
		candidates = append(candidates, scored{item: it, score: sharedTags(want, it.Tags)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.item.Date.Equal(b.item.Date) {
			return a.item.Date.After(b.item.Date)
		}
		return a.item.Slug < b.item.Slug
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]types.Item, len(candidates))
	for i, c := range candidates {
		out[i] = c.item
	}
	return out
}

// sharedTags counts distinct tags of other that appear in want.
func sharedTags(want map[string]bool, other []string) int {
	n := 0
	counted := make(map[string]bool, len(other))
	for _, t := range other {
		if want[t] && !counted[t] {
			counted[t] = true
			n++
		}
	}
	return n
}
