// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"
)

// Kind identifies a family of content items. The string value doubles as
// the top-level directory (or key prefix) of the kind in the content tree.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindProject Kind = "projects"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindBlog, KindProject}

// ParseKind maps user input ("blog", "post", "project", "projects") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blog", "blogs", "post", "posts":
		return KindBlog, nil
	case "project", "projects":
		return KindProject, nil
	}
	return "", fmt.Errorf("unknown content kind %q: use blog or projects", s)
}

// Label is the human name of the kind's published collection.
func (k Kind) Label() string {
	if k == KindProject {
		return "Projects"
	}
	return "Posts"
}

// State is the lifecycle position of an item on the content tree.
type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

// Dir returns the slash-separated directory of the kind in the given state,
// relative to the content root:
//
//	blog:     blog/posts, blog/drafts
//	projects: projects/published, projects/drafts
func (k Kind) Dir(s State) string {
	if s == StateDraft {
		return path.Join(string(k), "drafts")
	}
	if k == KindBlog {
		return path.Join(string(k), "posts")
	}
	return path.Join(string(k), "published")
}

// PublishedDir is shorthand for Dir(StatePublished).
func (k Kind) PublishedDir() string { return k.Dir(StatePublished) }

// ImageDir returns the directory holding images referenced by the kind.
func (k Kind) ImageDir() string { return path.Join("images", string(k)) }

// ProjectStatus tracks whether a project is still being worked on.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectWIP      ProjectStatus = "wip"
	ProjectArchived ProjectStatus = "archived"
)

// ProjectStatuses lists the accepted project statuses.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectWIP, ProjectArchived}

// TagList is a frontmatter tag list. A scalar or otherwise malformed value
// decodes to an empty list instead of failing the whole document.
type TagList []string

// UnmarshalYAML implements the yaml.v2-style unmarshaler that both the
// frontmatter parser and yaml.v3 understand.
func (t *TagList) UnmarshalYAML(unmarshal func(any) error) error {
	var raw []any
	if err := unmarshal(&raw); err != nil {
		*t = nil
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			tags = append(tags, s)
		}
	}
	*t = tags
	return nil
}

// Frontmatter is the metadata block at the top of every content file.
// Project-only keys are omitted from blog posts.
type Frontmatter struct {
	Title     string        `json:"title" yaml:"title"`
	Date      string        `json:"date" yaml:"date"`
	Author    string        `json:"author" yaml:"author"`
	Summary   string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	GitHubURL string        `json:"github_url,omitempty" yaml:"github_url,omitempty"`
	DemoURL   string        `json:"demo_url,omitempty" yaml:"demo_url,omitempty"`
	TechStack []string      `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
	Status    ProjectStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Tags      TagList       `json:"tags" yaml:"tags"`
}

// Item is a single loaded blog post or project. Items are immutable once
// loaded and are re-read from storage on every request.
type Item struct {
	Kind    Kind
	Slug    string
	Title   string
	Date    time.Time
	Author  string
	Tags    []string
	Summary string

	// Body is the raw markdown after the frontmatter block.
	Body string

	// HTML is Body rendered to HTML.
	HTML template.HTML

	GitHubURL string
	DemoURL   string
	TechStack []string
	Status    ProjectStatus
}

// HasTag reports whether the item carries tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// URL is the site path of the item.
func (it Item) URL() string {
	if it.Kind == KindProject {
		return "/projects/" + it.Slug
	}
	return "/blog/" + it.Slug
}
