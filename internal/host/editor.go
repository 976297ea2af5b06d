// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package host

import (
	"fmt"
	"strings"
)

// DefaultEditor is used when no editor is configured.
const DefaultEditor = "code --wait"

// Editor opens files in the author's editor.
type Editor struct {
	command []string
	exec    executor
}

// NewEditor returns an Editor for command, split on whitespace
// (e.g. "code --wait" or "vim").
func NewEditor(command string) *Editor {
	return newEditor(command, defaultExec)
}

func newEditor(command string, exec executor) *Editor {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultEditor)
	}
	return &Editor{command: fields, exec: exec}
}

// Open runs the editor on path attached to the terminal and waits for it
// to exit.
func (e *Editor) Open(path string) error {
	args := append(append([]string{}, e.command[1:]...), path)
	if err := e.exec.RunAttached(e.command[0], args...); err != nil {
		return fmt.Errorf("opening %s in %s: %w", path, e.command[0], err)
	}
	return nil
}
