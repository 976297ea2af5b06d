package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Backend selects where the site reads published content from.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

// AWSConfig holds the bucket coordinates shared by every S3 consumer.
type AWSConfig struct {
	// Bucket is the content bucket name (S3_CONTENT_BUCKET).
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the bucket's AWS region (AWS_REGION, default us-west-2).
	Region string `json:"region" yaml:"region"`

	// AccessKeyID and SecretAccessKey override the default credential
	// chain when both are set. Loaded from .secrets/, never from config.
	AccessKeyID     string `json:"-" yaml:"-"`
	SecretAccessKey string `json:"-" yaml:"-"`
}

// StoreConfig holds settings for the content store.
type StoreConfig struct {
	AWSConfig `yaml:",inline"`

	// Source picks the backend: local or s3 (CONTENT_SOURCE).
	Source Backend `json:"source" yaml:"source"`

	// ContentDir is the local content root (contains blog/, projects/, images/).
	ContentDir string `json:"dir" yaml:"dir"`
}

// Validate checks that the selected backend has what it needs.
func (c StoreConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Source, validation.Required, validation.In(BackendLocal, BackendS3)),
		validation.Field(&c.ContentDir, validation.When(c.Source == BackendLocal, validation.Required)),
		validation.Field(&c.AWSConfig, validation.Skip.When(c.Source != BackendS3)),
	)
}

// Validate requires a bucket and region.
func (c AWSConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.Region, validation.Required),
	)
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console, json, or pretty.
	Format string `json:"format" yaml:"format"`
}

// ServerConfig holds settings for the HTTP site.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// StaticDir is served under /static/ when it exists.
	StaticDir string `json:"static_dir" yaml:"static_dir"`

	// SiteTitle is shown in the page header.
	SiteTitle string `json:"site_title" yaml:"site_title"`

	// RelatedLimit caps the related-content list (default 5).
	RelatedLimit int `json:"related_limit" yaml:"related_limit"`

	// ReadTimeout and WriteTimeout bound each HTTP exchange.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// Validate checks the server settings.
func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.RelatedLimit, validation.Min(0)),
	)
}

// MountConfig holds settings for the s3fs mount used by the authoring CLI.
type MountConfig struct {
	AWSConfig `yaml:",inline"`

	// Point is the local directory the bucket is mounted on (CONTENT_MOUNT).
	Point string `json:"point" yaml:"point"`

	// PasswdFile is the s3fs credentials file (default ~/.passwd-s3fs).
	PasswdFile string `json:"passwd_file" yaml:"passwd_file"`
}

// Validate checks the mount settings.
func (c MountConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Point, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.Region, validation.Required),
	)
}

// AuthoringConfig groups everything the content CLI needs.
type AuthoringConfig struct {
	Mount MountConfig `json:"mount" yaml:"mount"`

	// Editor is the command used to open files (EDITOR, default "code --wait").
	Editor string `json:"editor" yaml:"editor"`

	// Author is written into new drafts.
	Author string `json:"author" yaml:"author"`
}

// SyncConfig holds settings for uploading the local content tree.
type SyncConfig struct {
	AWSConfig `yaml:",inline"`

	// ContentDir is the local tree to upload.
	ContentDir string `json:"dir" yaml:"dir"`

	// LedgerPath is the SQLite file recording previous uploads.
	LedgerPath string `json:"ledger" yaml:"ledger"`

	// DryRun reports uploads without performing them.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Force uploads every file regardless of the ledger.
	Force bool `json:"force" yaml:"force"`
}

// Validate checks the sync settings.
func (c SyncConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.AWSConfig),
	)
}
