// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folio/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AWSAccessKeyID, "  AKIAEXAMPLE  \n")
				writeFile(t, dir, AWSSecretAccessKey, "wJalrXUtnFEMI\n")
				return dir
			},
			want: map[string]string{
				AWSAccessKeyID:     "AKIAEXAMPLE",
				AWSSecretAccessKey: "wJalrXUtnFEMI",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AWSAccessKeyID, "AKIAEXAMPLE")
				writeFile(t, dir, AWSSecretAccessKey, "   \n\t  ")
				return dir
			},
			want: map[string]string{AWSAccessKeyID: "AKIAEXAMPLE"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, AWSAccessKeyID, "AKIAEXAMPLE")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{AWSAccessKeyID: "AKIAEXAMPLE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyAWS(t *testing.T) {
	cfg := types.AWSConfig{Bucket: "b", Region: "r"}
	assert.False(t, ApplyAWS(map[string]string{AWSAccessKeyID: "id"}, &cfg))
	assert.Empty(t, cfg.AccessKeyID)

	assert.True(t, ApplyAWS(map[string]string{AWSAccessKeyID: "id", AWSSecretAccessKey: "secret"}, &cfg))
	assert.Equal(t, "id", cfg.AccessKeyID)
	assert.Equal(t, "secret", cfg.SecretAccessKey)
	assert.Equal(t, "b", cfg.Bucket)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
