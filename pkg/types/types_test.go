// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "blog", want: KindBlog},
		{in: "Posts", want: KindBlog},
		{in: "project", want: KindProject},
		{in: " projects ", want: KindProject},
		{in: "images", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindDirs(t *testing.T) {
	assert.Equal(t, "blog/posts", KindBlog.Dir(StatePublished))
	assert.Equal(t, "blog/drafts", KindBlog.Dir(StateDraft))
	assert.Equal(t, "projects/published", KindProject.PublishedDir())
	assert.Equal(t, "projects/drafts", KindProject.Dir(StateDraft))
	assert.Equal(t, "images/blog", KindBlog.ImageDir())
	assert.Equal(t, "images/projects", KindProject.ImageDir())
}

func TestTagListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{name: "list", doc: "tags: [go, aws]\n", want: []string{"go", "aws"}},
		{name: "block list", doc: "tags:\n  - go\n  - 2024\n", want: []string{"go", "2024"}},
		{name: "scalar is ignored", doc: "tags: go\n", want: nil},
		{name: "empty list", doc: "tags: []\n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fm Frontmatter
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &fm))
			if tt.want == nil {
				assert.Empty(t, fm.Tags)
				return
			}
			assert.Equal(t, tt.want, []string(fm.Tags))
		})
	}
}

func TestItemHelpers(t *testing.T) {
	post := Item{Kind: KindBlog, Slug: "hello", Tags: []string{"go"}}
	assert.True(t, post.HasTag("go"))
	assert.False(t, post.HasTag("rust"))
	assert.Equal(t, "/blog/hello", post.URL())

	proj := Item{Kind: KindProject, Slug: "folio"}
	assert.Equal(t, "/projects/folio", proj.URL())
}

func TestStoreConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr bool
	}{
		{
			name: "local with dir",
			cfg:  StoreConfig{Source: BackendLocal, ContentDir: "content"},
		},
		{
			name:    "local without dir",
			cfg:     StoreConfig{Source: BackendLocal},
			wantErr: true,
		},
		{
			name: "s3 with bucket",
			cfg: StoreConfig{
				Source:    BackendS3,
				AWSConfig: AWSConfig{Bucket: "content", Region: "us-west-2"},
			},
		},
		{
			name:    "s3 without bucket",
			cfg:     StoreConfig{Source: BackendS3, AWSConfig: AWSConfig{Region: "us-west-2"}},
			wantErr: true,
		},
		{
			name:    "unknown source",
			cfg:     StoreConfig{Source: "ftp", ContentDir: "content"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMountConfigValidate(t *testing.T) {
	ok := MountConfig{Point: "/mnt/content", AWSConfig: AWSConfig{Bucket: "b", Region: "r"}}
	assert.NoError(t, ok.Validate())

	missing := MountConfig{AWSConfig: AWSConfig{Bucket: "b", Region: "r"}}
	assert.Error(t, missing.Validate())
}
