// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-slug"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/folio/pkg/types"
)

// ProjectOptions carries the project-only frontmatter of a new draft.
type ProjectOptions struct {
	GitHubURL string
	DemoURL   string
	Status    types.ProjectStatus
}

// Validate requires a GitHub URL and a known status.
func (o ProjectOptions) Validate() error {
	statuses := make([]any, len(types.ProjectStatuses))
	for i, s := range types.ProjectStatuses {
		statuses[i] = s
	}
	return validation.ValidateStruct(&o,
		validation.Field(&o.GitHubURL, validation.Required, is.URL),
		validation.Field(&o.DemoURL, is.URL),
		validation.Field(&o.Status, validation.Required, validation.In(statuses...)),
	)
}

// draftHeader is the frontmatter written into a new draft, in the order
// authors expect to see it.
type draftHeader struct {
	Title     string              `yaml:"title"`
	Date      string              `yaml:"date"`
	Author    string              `yaml:"author"`
	GitHubURL string              `yaml:"github_url,omitempty"`
	DemoURL   string              `yaml:"demo_url,omitempty"`
	TechStack *[]string           `yaml:"tech_stack,omitempty"`
	Status    types.ProjectStatus `yaml:"status,omitempty"`
	Tags      []string            `yaml:"tags"`
}

// Slugify derives the file name stem for title.
func Slugify(title string) (string, error) {
	s, err := slug.Normalize(title)
	if err != nil {
		return "", fmt.Errorf("making slug from %q: %w", title, err)
	}
	if s == "" {
		return "", fmt.Errorf("title %q has no usable characters", title)
	}
	return s, nil
}

// NewDraft writes a fresh draft for title and returns its path. opts is
// only consulted for projects. An existing draft with the same slug wraps
// ErrExists.
func (w *Workspace) NewDraft(kind types.Kind, title string, opts ProjectOptions) (string, error) {
	s, err := Slugify(title)
	if err != nil {
		return "", err
	}

	header := draftHeader{
		Title:  title,
		Date:   w.now().Format("2006-01-02"),
		Author: w.author,
		Tags:   []string{},
	}
	if kind == types.KindProject {
		if err := opts.Validate(); err != nil {
			return "", fmt.Errorf("invalid project options: %w", err)
		}
		stack := []string{}
		header.GitHubURL = opts.GitHubURL
		header.DemoURL = opts.DemoURL
		header.TechStack = &stack
		header.Status = opts.Status
	}

	doc, err := renderDraft(header)
	if err != nil {
		return "", err
	}

	dir := w.Dir(kind, types.StateDraft)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, s+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(doc); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

func renderDraft(h draftHeader) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(h); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")
	return buf.Bytes(), nil
}
