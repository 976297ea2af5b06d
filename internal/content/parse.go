// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content turns raw markdown documents into types.Item values and
// works on in-memory collections of them: date ordering, tag sets, tag
// filters, and related-content ranking.
package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/folio/pkg/types"
)

// dateFormats are tried in order when parsing the frontmatter date.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse splits raw into frontmatter and body, renders the body, and
// returns the resulting item. A document without frontmatter is all body.
func Parse(kind types.Kind, slug string, raw []byte) (types.Item, error) {
	var fm types.Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return types.Item{}, fmt.Errorf("parsing frontmatter of %s/%s: %w", kind, slug, err)
	}

	date, err := ParseDate(fm.Date)
	if err != nil {
		return types.Item{}, fmt.Errorf("parsing date of %s/%s: %w", kind, slug, err)
	}

	html, err := Render(body)
	if err != nil {
		return types.Item{}, fmt.Errorf("rendering %s/%s: %w", kind, slug, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = TitleFromSlug(slug)
	}

	item := types.Item{
		Kind:    kind,
		Slug:    slug,
		Title:   title,
		Date:    date,
		Author:  fm.Author,
		Tags:    uniqueTags(fm.Tags),
		Summary: fm.Summary,
		Body:    string(body),
		HTML:    html,
	}
	if kind == types.KindProject {
		item.GitHubURL = fm.GitHubURL
		item.DemoURL = fm.DemoURL
		item.TechStack = fm.TechStack
		item.Status = fm.Status
	}
	return item, nil
}

// ParseDate accepts YYYY-MM-DD and the common timestamp layouts. An empty
// string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q: use YYYY-MM-DD or RFC3339", s)
}

// TitleFromSlug turns "my-first_post" into "My First Post".
func TitleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
