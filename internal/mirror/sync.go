// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror uploads a local content tree to the content bucket. A
// SQLite ledger remembers what was sent so repeated runs only upload
// files that changed.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/pdiddy/folio/internal/logging"
	"github.com/pdiddy/folio/internal/store"
	"github.com/pdiddy/folio/pkg/types"
)

// LedgerFile is the default ledger name inside the content directory. The
// leading dot keeps it out of the upload.
const LedgerFile = ".sync-ledger.db"

const defaultContentType = "application/octet-stream"

// contentTypes covers extensions the system MIME table often lacks.
var contentTypes = map[string]string{
	".md":       "text/markdown; charset=utf-8",
	".markdown": "text/markdown; charset=utf-8",
}

// uploader is the slice of the S3 API the syncer needs.
type uploader interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Summary holds counts from a sync run. In a dry run Uploaded counts the
// files that would have been sent.
type Summary struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Total returns the number of files considered.
func (s Summary) Total() int {
	return s.Uploaded + s.Skipped + s.Failed
}

// Syncer uploads one content directory to one bucket.
type Syncer struct {
	cfg    types.SyncConfig
	api    uploader
	ledger *Ledger
	log    logging.Logger
}

// New validates cfg, connects to S3, and opens the ledger. In a dry run
// the ledger is only read, and only when it already exists.
func New(cfg types.SyncConfig, log logging.Logger) (*Syncer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sync config: %w", err)
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = filepath.Join(cfg.ContentDir, LedgerFile)
	}

	sess, err := store.NewSession(cfg.AWSConfig)
	if err != nil {
		return nil, err
	}

	ledger, err := openSyncLedger(cfg)
	if err != nil {
		return nil, err
	}
	return newSyncer(cfg, s3.New(sess), ledger, log), nil
}

// openSyncLedger opens the ledger for a run. A dry run reads an existing
// ledger without touching it and runs without one when none exists.
func openSyncLedger(cfg types.SyncConfig) (*Ledger, error) {
	if !cfg.DryRun {
		return OpenLedger(cfg.LedgerPath)
	}
	if _, err := os.Stat(cfg.LedgerPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return OpenLedgerReadOnly(cfg.LedgerPath)
}

func newSyncer(cfg types.SyncConfig, api uploader, ledger *Ledger, log logging.Logger) *Syncer {
	if log == nil {
		log = logging.NoOp()
	}
	return &Syncer{cfg: cfg, api: api, ledger: ledger, log: log}
}

// Close releases the ledger.
func (s *Syncer) Close() error {
	if s.ledger == nil {
		return nil
	}
	return s.ledger.Close()
}

// Run walks the content directory and uploads every file that is new or
// changed since the last run, writing one line per file and a summary to
// w. Per-file failures are counted, not returned; an unreadable content
// directory or a cancelled ctx stops the run.
func (s *Syncer) Run(ctx context.Context, w io.Writer) (Summary, error) {
	var summary Summary

	files, err := s.collect()
	if err != nil {
		return summary, err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		switch res := s.syncFile(ctx, f); {
		case res.err != nil:
			fmt.Fprintf(w, "failed   %s: %v\n", f.key, res.err)
			s.log.Warn("upload failed", "key", f.key, "error", res.err)
			summary.Failed++
		case res.skipped:
			fmt.Fprintf(w, "skipped  %s\n", f.key)
			summary.Skipped++
		case s.cfg.DryRun:
			fmt.Fprintf(w, "would upload %s -> %s\n", f.path, s.location(f.key))
			summary.Uploaded++
		default:
			fmt.Fprintf(w, "uploaded %s -> %s\n", f.path, s.location(f.key))
			summary.Uploaded++
		}
	}

	verb := "uploaded"
	if s.cfg.DryRun {
		verb = "would upload"
	}
	fmt.Fprintf(w, "\n%s: %d, skipped: %d, failed: %d (s3://%s/)\n",
		verb, summary.Uploaded, summary.Skipped, summary.Failed, s.cfg.Bucket)
	return summary, nil
}

// localFile is one file found under the content directory.
type localFile struct {
	path string
	key  string
	info fs.FileInfo
}

type outcome struct {
	skipped bool
	err     error
}

// collect lists the regular files under the content directory, skipping
// anything with a dot-prefixed path component.
func (s *Syncer) collect() ([]localFile, error) {
	root := s.cfg.ContentDir
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory %s is not a directory", root)
	}

	var files []localFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, localFile{path: path, key: filepath.ToSlash(rel), info: fi})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func (s *Syncer) syncFile(ctx context.Context, f localFile) outcome {
	size, mod := f.info.Size(), f.info.ModTime()

	if s.ledger != nil && !s.cfg.Force {
		same, err := s.ledger.Unchanged(ctx, s.cfg.Bucket, f.key, size, mod)
		if err != nil {
			return outcome{err: err}
		}
		if same {
			return outcome{skipped: true}
		}
	}
	if s.cfg.DryRun {
		return outcome{}
	}

	if err := s.upload(ctx, f); err != nil {
		return outcome{err: err}
	}
	if s.ledger != nil {
		if err := s.ledger.Record(ctx, s.cfg.Bucket, f.key, size, mod); err != nil {
			s.log.Warn("upload not recorded, it will be repeated next run", "key", f.key, "error", err)
		}
	}
	return outcome{}
}

func (s *Syncer) upload(ctx context.Context, f localFile) error {
	body, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer body.Close()

	_, err = s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(f.key),
		Body:          body,
		ContentLength: aws.Int64(f.info.Size()),
		ContentType:   aws.String(ContentType(f.path)),
	})
	if err != nil {
		var rf awserr.RequestFailure
		if errors.As(err, &rf) {
			s.log.Debug("put object failed", "key", f.key, "request_id", rf.RequestID())
		}
		return fmt.Errorf("putting %s: %w", f.key, err)
	}
	s.log.Debug("put object", "key", f.key, "bytes", f.info.Size())
	return nil
}

func (s *Syncer) location(key string) string {
	return "s3://" + s.cfg.Bucket + "/" + key
}

// ContentType guesses a MIME type from the file extension.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultContentType
}
