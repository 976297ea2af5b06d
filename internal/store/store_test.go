// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folio/pkg/types"
)

// fakeS3 serves objects from an in-memory map keyed by object key.
type fakeS3 struct {
	objects map[string]string
	listErr error
	pageLen int
}

func (f *fakeS3) ListObjectsV2PagesWithContext(_ aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option) error {
	if f.listErr != nil {
		return f.listErr
	}
	prefix := aws.StringValue(input.Prefix)
	delim := aws.StringValue(input.Delimiter)

	var keys []string
	for k := range f.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if delim != "" && strings.Contains(strings.TrimPrefix(k, prefix), delim) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	size := f.pageLen
	if size <= 0 {
		size = len(keys) + 1
	}
	for start := 0; start < len(keys) || start == 0; start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		page := &s3.ListObjectsV2Output{}
		for _, k := range keys[start:end] {
			page.Contents = append(page.Contents, &s3.Object{Key: aws.String(k)})
		}
		last := end >= len(keys)
		if !fn(page, last) || last {
			return nil
		}
	}
	return nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, input *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.StringValue(input.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// fixture is the shared content tree used by the backend contract tests.
var fixture = map[string]string{
	"blog/posts/hello-world.md":   "---\ntitle: Hello\n---\nhi\n",
	"blog/posts/second.md":        "---\ntitle: Second\n---\nbody\n",
	"blog/posts/v1..v2-notes.md":  "---\ntitle: Upgrade notes\n---\n",
	"blog/posts/notes.txt":        "not markdown",
	"blog/posts/nested/deep.md":   "nested",
	"blog/drafts/unfinished.md":   "draft",
	"projects/published/folio.md": "---\ntitle: Folio\n---\n",
	"images/blog/cat.png":         "png",
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	root := t.TempDir()
	for rel, content := range fixture {
		writeFile(t, root, rel, content)
	}
	return map[string]Store{
		"local": NewLocal(root),
		"s3":    newS3("content", &fakeS3{objects: fixture, pageLen: 1}),
	}
}

func TestListContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			posts, err := s.List(context.Background(), types.KindBlog)
			require.NoError(t, err)
			assert.Equal(t, []string{"hello-world", "second", "v1..v2-notes"}, posts)

			projects, err := s.List(context.Background(), types.KindProject)
			require.NoError(t, err)
			assert.Equal(t, []string{"folio"}, projects)
		})
	}
}

func TestReadContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			data, err := s.Read(context.Background(), types.KindBlog, "hello-world")
			require.NoError(t, err)
			assert.Contains(t, string(data), "title: Hello")
		})
	}
}

func TestEveryListedSlugIsReadable(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, kind := range types.Kinds {
				slugs, err := s.List(context.Background(), kind)
				require.NoError(t, err)
				for _, slug := range slugs {
					_, err := s.Read(context.Background(), kind, slug)
					assert.NoError(t, err, "%s/%s", kind, slug)
				}
			}
		})
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	slugs := []string{"does-not-exist", "unfinished", "", ".", "..", "../posts/hello-world", "nested/deep", `a\b`}
	for name, s := range backends(t) {
		for _, slug := range slugs {
			t.Run(name+"/"+slug, func(t *testing.T) {
				_, err := s.Read(context.Background(), types.KindBlog, slug)
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
			})
		}
	}
}

func TestLocalListMissingDirectory(t *testing.T) {
	s := NewLocal(filepath.Join(t.TempDir(), "nothing-here"))
	slugs, err := s.List(context.Background(), types.KindProject)
	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestLocalHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewLocal(t.TempDir())
	_, err := s.List(ctx, types.KindBlog)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestS3ListError(t *testing.T) {
	s := newS3("content", &fakeS3{listErr: errors.New("access denied")})
	_, err := s.List(context.Background(), types.KindBlog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://content/blog/posts/")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLocation(t *testing.T) {
	s := newS3("bucket", &fakeS3{})
	assert.Equal(t, "s3://bucket/projects/published/folio.md", s.Location(types.KindProject, "folio"))

	l := NewLocal("content")
	assert.Equal(t, filepath.Join("content", "blog", "posts", "a.md"), l.Location(types.KindBlog, "a"))
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(types.StoreConfig{Source: types.BackendLocal, ContentDir: "content"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(types.StoreConfig{Source: types.BackendS3})
	assert.Error(t, err)
}
