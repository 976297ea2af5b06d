// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package host runs the external programs the authoring CLI depends on:
// s3fs and fusermount for the bucket mount, mountpoint to detect it, and
// the author's editor.
package host

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
	RunAttached(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunOutput runs the command and returns its trimmed stderr, which is
// where s3fs and fusermount explain failures.
func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// RunAttached connects the command to the terminal.
func (o *osExecutor) RunAttached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}
