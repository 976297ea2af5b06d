// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folio/pkg/types"
)

// fakeUploader records every PutObject call.
type fakeUploader struct {
	puts    map[string]string // key -> body
	types   map[string]string // key -> content type
	failKey string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{puts: map[string]string{}, types: map[string]string{}}
}

func (f *fakeUploader) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	key := aws.StringValue(input.Key)
	if key == f.failKey {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.puts[key] = string(body)
	f.types[key] = aws.StringValue(input.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeUploader) keys() []string {
	keys := make([]string, 0, len(f.puts))
	for k := range f.puts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

var tree = map[string]string{
	"blog/posts/hello.md":      "# hello",
	"blog/drafts/wip.md":       "# wip",
	"images/blog/diagram.png":  "png",
	".git/config":              "secret",
	"blog/.hidden.md":          "hidden",
	"projects/.cache/thing.md": "cached",
}

func syncConfig(root string) types.SyncConfig {
	return types.SyncConfig{
		AWSConfig:  types.AWSConfig{Bucket: "my-content", Region: "us-west-2"},
		ContentDir: root,
		LedgerPath: filepath.Join(root, LedgerFile),
	}
}

func openLedger(t *testing.T, path string) *Ledger {
	t.Helper()
	l, err := OpenLedger(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRunUploadsAndSkipsDotPaths(t *testing.T) {
	root := writeTree(t, tree)
	cfg := syncConfig(root)
	api := newFakeUploader()
	s := newSyncer(cfg, api, openLedger(t, cfg.LedgerPath), nil)

	var out bytes.Buffer
	summary, err := s.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, Summary{Uploaded: 3}, summary)
	assert.Equal(t, []string{"blog/drafts/wip.md", "blog/posts/hello.md", "images/blog/diagram.png"}, api.keys())
	assert.Equal(t, "# hello", api.puts["blog/posts/hello.md"])
	assert.Equal(t, "text/markdown; charset=utf-8", api.types["blog/posts/hello.md"])
	assert.Equal(t, "image/png", api.types["images/blog/diagram.png"])
	assert.Contains(t, out.String(), "-> s3://my-content/blog/posts/hello.md")
	assert.Contains(t, out.String(), "uploaded: 3, skipped: 0, failed: 0")
}

func TestRunSkipsUnchangedUnlessForced(t *testing.T) {
	root := writeTree(t, tree)
	cfg := syncConfig(root)
	ledger := openLedger(t, cfg.LedgerPath)

	_, err := newSyncer(cfg, newFakeUploader(), ledger, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)

	// Touch one file so it is seen as changed.
	changed := filepath.Join(root, "blog", "posts", "hello.md")
	require.NoError(t, os.WriteFile(changed, []byte("# hello again"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(changed, later, later))

	api := newFakeUploader()
	summary, err := newSyncer(cfg, api, ledger, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Summary{Uploaded: 1, Skipped: 2}, summary)
	assert.Equal(t, []string{"blog/posts/hello.md"}, api.keys())

	cfg.Force = true
	api = newFakeUploader()
	summary, err = newSyncer(cfg, api, ledger, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Summary{Uploaded: 3}, summary)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	root := writeTree(t, tree)
	cfg := syncConfig(root)
	cfg.DryRun = true
	ledger := openLedger(t, cfg.LedgerPath)
	api := newFakeUploader()

	var out bytes.Buffer
	summary, err := newSyncer(cfg, api, ledger, nil).Run(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Uploaded: 3}, summary)
	assert.Empty(t, api.puts)
	assert.Contains(t, out.String(), "would upload: 3")

	// The dry run recorded nothing, so a real run still uploads everything.
	cfg.DryRun = false
	summary, err = newSyncer(cfg, newFakeUploader(), ledger, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Uploaded)
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDryRunLedgerIsNeverCreated(t *testing.T) {
	cfg := syncConfig(writeTree(t, tree))
	cfg.DryRun = true
	cfg.LedgerPath = filepath.Join(t.TempDir(), "state", "ledger.db")

	ledger, err := openSyncLedger(cfg)
	require.NoError(t, err)
	assert.Nil(t, ledger)
	assert.NoDirExists(t, filepath.Dir(cfg.LedgerPath))
}

func TestDryRunLeavesExistingLedgerUntouched(t *testing.T) {
	cfg := syncConfig(writeTree(t, tree))
	stateDir := t.TempDir()
	cfg.LedgerPath = filepath.Join(stateDir, "ledger.db")

	// A real run populates the ledger.
	writable, err := openSyncLedger(cfg)
	require.NoError(t, err)
	_, err = newSyncer(cfg, newFakeUploader(), writable, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	require.NoError(t, writable.Close())

	before, err := os.Stat(cfg.LedgerPath)
	require.NoError(t, err)
	require.Equal(t, []string{"ledger.db"}, dirNames(t, stateDir))

	cfg.DryRun = true
	readOnly, err := openSyncLedger(cfg)
	require.NoError(t, err)
	require.NotNil(t, readOnly)
	defer readOnly.Close()

	api := newFakeUploader()
	summary, err := newSyncer(cfg, api, readOnly, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 3}, summary, "the dry run still reads what was uploaded")
	assert.Empty(t, api.puts)

	assert.Error(t, readOnly.Record(context.Background(), "b", "k", 1, time.Now()))
	assert.Equal(t, []string{"ledger.db"}, dirNames(t, stateDir), "no journal or shared-memory files")
	after, err := os.Stat(cfg.LedgerPath)
	require.NoError(t, err)
	assert.Equal(t, before.Size(), after.Size())
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestOpenLedgerReadOnlyMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := OpenLedgerReadOnly(filepath.Join(dir, "absent.db"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, dirNames(t, dir))
}

func TestRunCountsFailures(t *testing.T) {
	root := writeTree(t, tree)
	cfg := syncConfig(root)
	ledger := openLedger(t, cfg.LedgerPath)
	api := newFakeUploader()
	api.failKey = "blog/drafts/wip.md"

	var out bytes.Buffer
	summary, err := newSyncer(cfg, api, ledger, nil).Run(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Uploaded: 2, Failed: 1}, summary)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, out.String(), "failed   blog/drafts/wip.md")

	// The failed file was not recorded and is retried next run.
	api.failKey = ""
	summary, err = newSyncer(cfg, api, ledger, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Summary{Uploaded: 1, Skipped: 2}, summary)
}

func TestRunWithoutLedger(t *testing.T) {
	root := writeTree(t, tree)
	cfg := syncConfig(root)
	summary, err := newSyncer(cfg, newFakeUploader(), nil, nil).Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Uploaded)
}

func TestRunErrors(t *testing.T) {
	cfg := syncConfig(filepath.Join(t.TempDir(), "missing"))
	_, err := newSyncer(cfg, newFakeUploader(), nil, nil).Run(context.Background(), io.Discard)
	assert.Error(t, err)

	cfg = syncConfig(writeTree(t, tree))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newSyncer(cfg, newFakeUploader(), nil, nil).Run(ctx, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedgerUnchanged(t *testing.T) {
	l := openLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()
	mod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	same, err := l.Unchanged(ctx, "b", "k", 10, mod)
	require.NoError(t, err)
	assert.False(t, same, "unknown key")

	require.NoError(t, l.Record(ctx, "b", "k", 10, mod))
	same, err = l.Unchanged(ctx, "b", "k", 10, mod.In(time.FixedZone("PDT", -7*3600)))
	require.NoError(t, err)
	assert.True(t, same)

	same, _ = l.Unchanged(ctx, "b", "k", 11, mod)
	assert.False(t, same, "size changed")
	same, _ = l.Unchanged(ctx, "b", "k", 10, mod.Add(time.Second))
	assert.False(t, same, "mod time changed")
	same, _ = l.Unchanged(ctx, "other", "k", 10, mod)
	assert.False(t, same, "other bucket")
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"post.md":     "text/markdown; charset=utf-8",
		"photo.PNG":   "image/png",
		"style.css":   "text/css; charset=utf-8",
		"archive.zzz": defaultContentType,
		"Makefile":    defaultContentType,
	}
	for in, want := range tests {
		assert.Equal(t, want, ContentType(in), in)
	}
}
