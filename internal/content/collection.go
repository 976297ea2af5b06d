// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"sort"

	"github.com/pdiddy/folio/pkg/types"
)

// SortByDate orders items newest first; equal dates fall back to slug order.
func SortByDate(items []types.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Slug < items[j].Slug
	})
}

// AllTags returns the sorted union of tags across items.
func AllTags(items []types.Item) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, it := range items {
		for _, t := range it.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// FilterByTag keeps items carrying tag, preserving order. An empty tag
// keeps everything.
func FilterByTag(items []types.Item, tag string) []types.Item {
	if tag == "" {
		return items
	}
	out := make([]types.Item, 0, len(items))
	for _, it := range items {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}

// Recent returns at most n items from an already sorted collection.
func Recent(items []types.Item, n int) []types.Item {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
