// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/pdiddy/folio/pkg/types"
)

// objectAPI is the slice of the S3 client the store needs. *s3.S3
// satisfies it; tests substitute a fake.
type objectAPI interface {
	ListObjectsV2PagesWithContext(ctx aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, opts ...request.Option) error
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// S3 reads content from a bucket using the same key layout as the local
// tree: blog/posts/<slug>.md, projects/published/<slug>.md.
type S3 struct {
	bucket string
	api    objectAPI
}

// NewSession creates an AWS session for cfg. Static credentials are used
// when both keys are present; otherwise the default provider chain applies.
func NewSession(cfg types.AWSConfig) (*session.Session, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}
	return sess, nil
}

// NewS3 returns a Store backed by the bucket in cfg.
func NewS3(cfg types.AWSConfig) (*S3, error) {
	sess, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return newS3(cfg.Bucket, s3.New(sess)), nil
}

func newS3(bucket string, api objectAPI) *S3 {
	return &S3{bucket: bucket, api: api}
}

// List returns the stems of *.md objects directly under the kind's
// published prefix.
func (s *S3) List(ctx context.Context, kind types.Kind) ([]string, error) {
	prefix := kind.PublishedDir() + "/"
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}

	slugs := []string{}
	err := s.api.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			if name == key || strings.Contains(name, "/") || !strings.HasSuffix(name, markdownExt) {
				continue
			}
			slugs = append(slugs, strings.TrimSuffix(name, markdownExt))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("listing s3://%s/%s: %w", s.bucket, prefix, err)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Read fetches one object. A missing key wraps ErrNotFound.
func (s *S3) Read(ctx context.Context, kind types.Kind, slug string) ([]byte, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	key := objectKey(kind, slug)
	out, err := s.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Location(kind, slug))
		}
		return nil, fmt.Errorf("getting %s: %w", s.Location(kind, slug), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Location(kind, slug), err)
	}
	return data, nil
}

// Location returns the s3:// URI of the item.
func (s *S3) Location(kind types.Kind, slug string) string {
	return "s3://" + s.bucket + "/" + objectKey(kind, slug)
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
}
