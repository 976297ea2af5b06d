// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger records which files have been uploaded to which bucket, by size
// and modification time, so unchanged files can be skipped.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens or creates the SQLite ledger at path.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// OpenLedgerReadOnly opens an existing ledger without writing to it or its
// directory. The file is treated as immutable, so SQLite creates no journal
// or shared-memory files next to it, and Record fails.
func OpenLedgerReadOnly(path string) (*Ledger, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro&immutable=1"}
	db, err := sql.Open("sqlite3", u.String())
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS uploads (
		bucket TEXT NOT NULL,
		key TEXT NOT NULL,
		size INTEGER NOT NULL,
		mod_time TEXT NOT NULL,
		uploaded_at TEXT NOT NULL,
		PRIMARY KEY (bucket, key)
	)`)
	return err
}

// Unchanged reports whether key was last uploaded to bucket with the same
// size and modification time.
func (l *Ledger) Unchanged(ctx context.Context, bucket, key string, size int64, modTime time.Time) (bool, error) {
	var storedSize int64
	var storedMod string
	err := l.db.QueryRowContext(ctx,
		`SELECT size, mod_time FROM uploads WHERE bucket = ? AND key = ?`, bucket, key,
	).Scan(&storedSize, &storedMod)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", key, err)
	}
	return storedSize == size && storedMod == formatModTime(modTime), nil
}

// Record notes a successful upload of key.
func (l *Ledger) Record(ctx context.Context, bucket, key string, size int64, modTime time.Time) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO uploads (bucket, key, size, mod_time, uploaded_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(bucket, key) DO UPDATE SET
			size=excluded.size, mod_time=excluded.mod_time, uploaded_at=excluded.uploaded_at`,
		bucket, key, size, formatModTime(modTime), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", key, err)
	}
	return nil
}

func formatModTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
