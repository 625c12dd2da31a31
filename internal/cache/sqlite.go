// internal/cache/sqlite.go
//
// SQLite-backed cache Store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Creating the cache_entries table on first use (idempotent).
//   - Reading/writing entries with an absolute expiry in unix seconds.
//
// Useful for a single instance that should keep its cache across restarts
// without running Redis.

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// SQLite is a Store backed by a local SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

const cacheSchema = `CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires ON cache_entries(expires_at);`

/**
 * OpenSQLite opens (and creates if missing) the cache database file.
 *
 * - Ensures parent directory exists for relative paths (e.g. ./data/cache.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Creates the cache table and purges entries that already expired.
 */
func OpenSQLite(path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache_entries: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if n, err := s.Purge(context.Background()); err != nil {
		log.Warn().Err(err).Msg("purge expired cache entries")
	} else if n > 0 {
		log.Info().Int64("entries", n).Str("path", path).Msg("purged expired cache entries")
	}
	return s, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var val []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM cache_entries WHERE key=? AND expires_at>?`,
		key, s.now().Unix(),
	).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at`,
		key, val, s.now().Add(ttl).Unix(),
	)
	return err
}

// Purge deletes expired entries and reports how many were removed.
func (s *SQLite) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at<=?`, s.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) Close() error { return s.db.Close() }
