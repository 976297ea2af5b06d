//go:build mage

// Package main contains Mage build targets for folio developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// contentDirs is the local content tree the site and sync expect.
var contentDirs = []string{
	"content/blog/posts",
	"content/blog/drafts",
	"content/projects/published",
	"content/projects/drafts",
	"content/images/blog",
	"content/images/projects",
	"static/css",
}

// Init creates the local content directory skeleton.
func Init() error {
	for _, dir := range contentDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Content directories initialized.")
	return nil
}

const binDir = "bin"

// binaries maps each binary name to its package.
var binaries = map[string]string{
	"site":    "./cmd/site",
	"content": "./cmd/content",
}

// Build compiles the site and content binaries into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	ldflags := "-X main.version=" + buildVersion()
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Serve builds and runs the site against the local content directory.
func Serve() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"CONTENT_SOURCE": "local"}, filepath.Join(binDir, "site"), "serve")
}

// Sync builds and uploads the local content directory to the bucket.
func Sync() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "site"), "sync")
}

// buildVersion describes the working tree with git, or "dev" outside a
// repository.
func buildVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}

// Stats prints Go line counts and the size of the local content tree.
func Stats() error {
	prod, test, err := goLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of Go (production): %d\n", prod)
	fmt.Printf("Lines of Go (tests):      %d\n", test)

	for _, dir := range contentDirs[:4] {
		n, words, err := markdownStats(dir)
		if err != nil {
			return err
		}
		fmt.Printf("%-27s %3d files, %6d words\n", dir+":", n, words)
	}
	return nil
}

// goLines counts non-blank lines in Go files under root, split into
// production and test code. Hidden, underscore-prefixed, and build output
// directories are skipped.
func goLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// markdownStats counts the markdown files directly in dir and their words.
// A missing directory counts as empty.
func markdownStats(dir string) (files, words int, err error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return 0, 0, err
	}
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return 0, 0, fmt.Errorf("reading %s: %w", m, err)
		}
		files++
		words += len(strings.Fields(string(data)))
	}
	return files, words, nil
}
