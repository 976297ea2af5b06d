// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package host

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/folio/pkg/types"
)

const (
	binMountpoint = "mountpoint"
	binS3FS       = "s3fs"
	binFusermount = "fusermount"
)

// ErrNotMounted is returned by Require when the bucket is not mounted.
var ErrNotMounted = errors.New("not mounted, run: content mount")

// Mounter manages the s3fs mount of the content bucket.
type Mounter struct {
	cfg  types.MountConfig
	exec executor
}

// NewMounter returns a Mounter for cfg using the real system commands.
func NewMounter(cfg types.MountConfig) *Mounter {
	return &Mounter{cfg: cfg, exec: defaultExec}
}

// Point returns the mount directory.
func (m *Mounter) Point() string { return m.cfg.Point }

// IsMounted reports whether the mount point is an active mount. Any
// failure to ask counts as not mounted.
func (m *Mounter) IsMounted() bool {
	return m.exec.RunSilent(binMountpoint, "-q", m.cfg.Point) == nil
}

// Require fails with ErrNotMounted unless the bucket is mounted.
func (m *Mounter) Require() error {
	if !m.IsMounted() {
		return ErrNotMounted
	}
	return nil
}

// Mount mounts the bucket with s3fs. It reports whether a mount was made;
// an existing mount is left alone.
func (m *Mounter) Mount() (bool, error) {
	if m.IsMounted() {
		return false, nil
	}
	if err := m.cfg.Validate(); err != nil {
		return false, fmt.Errorf("invalid mount config: %w", err)
	}
	if _, err := m.exec.LookPath(binS3FS); err != nil {
		return false, fmt.Errorf("%s not found, install it (e.g. sudo apt install s3fs): %w", binS3FS, err)
	}
	if err := m.ensurePasswdFile(); err != nil {
		return false, err
	}
	if err := os.MkdirAll(m.cfg.Point, 0o755); err != nil {
		return false, fmt.Errorf("creating mount point %s: %w", m.cfg.Point, err)
	}

	stderr, err := m.exec.RunOutput(binS3FS, m.mountArgs()...)
	if err != nil {
		return false, fmt.Errorf("mounting %s on %s: %w%s", m.cfg.Bucket, m.cfg.Point, err, detail(stderr))
	}
	return true, nil
}

// Unmount detaches the mount. It reports whether anything was unmounted.
func (m *Mounter) Unmount() (bool, error) {
	if !m.IsMounted() {
		return false, nil
	}
	stderr, err := m.exec.RunOutput(binFusermount, "-u", m.cfg.Point)
	if err != nil {
		return false, fmt.Errorf("unmounting %s: %w%s", m.cfg.Point, err, detail(stderr))
	}
	return true, nil
}

// ensurePasswdFile writes the s3fs credentials file from the configured key
// pair when the file does not exist. An existing file is never replaced.
func (m *Mounter) ensurePasswdFile() error {
	_, err := os.Stat(m.cfg.PasswdFile)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) || m.cfg.AccessKeyID == "" || m.cfg.SecretAccessKey == "" {
		return fmt.Errorf("s3fs credentials file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.cfg.PasswdFile), 0o700); err != nil {
		return fmt.Errorf("creating s3fs credentials directory: %w", err)
	}
	line := m.cfg.AccessKeyID + ":" + m.cfg.SecretAccessKey + "\n"
	if err := os.WriteFile(m.cfg.PasswdFile, []byte(line), 0o600); err != nil {
		return fmt.Errorf("writing s3fs credentials file: %w", err)
	}
	return nil
}

func (m *Mounter) mountArgs() []string {
	return []string{
		m.cfg.Bucket, m.cfg.Point,
		"-o", "passwd_file=" + m.cfg.PasswdFile,
		"-o", fmt.Sprintf("url=https://s3.%s.amazonaws.com", m.cfg.Region),
		"-o", "use_path_request_style",
	}
}

func detail(stderr string) string {
	if stderr == "" {
		return ""
	}
	return ": " + stderr
}
