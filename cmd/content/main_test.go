// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runnable returns every command under root that does work, keyed by its
// full path.
func runnable(root *cobra.Command) map[string]*cobra.Command {
	found := map[string]*cobra.Command{}
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		if c.Runnable() {
			found[c.CommandPath()] = c
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	return found
}

func TestMountCheckedBeforeWork(t *testing.T) {
	needsMount := []string{
		"content blog new",
		"content blog list",
		"content blog edit",
		"content blog publish",
		"content blog unpublish",
		"content project new",
		"content project list",
		"content project edit",
		"content project publish",
		"content project unpublish",
		"content image add",
		"content image list",
		"content tags",
	}
	noMount := []string{
		"content mount",
		"content unmount",
		"content status",
		"content version",
	}

	commands := runnable(rootCmd)
	require.Len(t, commands, len(needsMount)+len(noMount), "every command is classified")

	want := reflect.ValueOf(requireMount).Pointer()
	for _, path := range needsMount {
		t.Run(path, func(t *testing.T) {
			c, ok := commands[path]
			require.True(t, ok, "command not registered")
			require.NotNil(t, c.PreRunE)
			assert.Equal(t, want, reflect.ValueOf(c.PreRunE).Pointer())
		})
	}
	for _, path := range noMount {
		t.Run(path, func(t *testing.T) {
			c, ok := commands[path]
			require.True(t, ok, "command not registered")
			assert.Nil(t, c.PreRunE)
		})
	}
}
