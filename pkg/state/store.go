// Package state persists per-article read and saved flags keyed by article link.
// Fetched content itself is never stored.
package state

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/infodash/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// DefaultDSN is used when Config.DSN is empty
const DefaultDSN = "file:infodash.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store keeps read and saved flags in sqlite
type Store struct {
	db *sqlx.DB
}

// New opens the database, applies pragmas and the schema
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		cfg.DSN = DefaultDSN
	}
	// every connection to :memory: is a separate database
	if strings.Contains(cfg.DSN, ":memory:") {
		cfg.MaxOpenConns = 1
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// MarkRead sets the read flag for link
func (s *Store) MarkRead(ctx context.Context, link string) error {
	return s.exec(ctx, "mark read", link, `
		INSERT INTO article_state (link, is_read, read_at, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(link) DO UPDATE SET
			is_read = 1,
			read_at = COALESCE(article_state.read_at, excluded.read_at),
			updated_at = excluded.updated_at`)
}

// MarkUnread clears the read flag for link, unknown links are fine
func (s *Store) MarkUnread(ctx context.Context, link string) error {
	return s.exec(ctx, "mark unread", link, `
		UPDATE article_state SET is_read = 0, read_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE link = ?`)
}

// Save sets the saved flag for link
func (s *Store) Save(ctx context.Context, link string) error {
	return s.exec(ctx, "save", link, `
		INSERT INTO article_state (link, is_saved, saved_at, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(link) DO UPDATE SET
			is_saved = 1,
			saved_at = COALESCE(article_state.saved_at, excluded.saved_at),
			updated_at = excluded.updated_at`)
}

// Unsave clears the saved flag for link
func (s *Store) Unsave(ctx context.Context, link string) error {
	return s.exec(ctx, "unsave", link, `
		UPDATE article_state SET is_saved = 0, saved_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE link = ?`)
}

// IsRead reports whether link is marked read
func (s *Store) IsRead(ctx context.Context, link string) (bool, error) {
	st, err := s.State(ctx, link)
	if err != nil {
		return false, fmt.Errorf("is read: %w", err)
	}
	return st.Read, nil
}

// IsSaved reports whether link is saved
func (s *Store) IsSaved(ctx context.Context, link string) (bool, error) {
	st, err := s.State(ctx, link)
	if err != nil {
		return false, fmt.Errorf("is saved: %w", err)
	}
	return st.Saved, nil
}

type stateSQL struct {
	Link  string `db:"link"`
	Read  bool   `db:"is_read"`
	Saved bool   `db:"is_saved"`
}

// State returns both flags for link, an unknown link has both unset
func (s *Store) State(ctx context.Context, link string) (domain.ArticleState, error) {
	var st stateSQL
	err := s.db.GetContext(ctx, &st, "SELECT link, is_read, is_saved FROM article_state WHERE link = ?", link)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ArticleState{}, nil
	}
	if err != nil {
		return domain.ArticleState{}, fmt.Errorf("get state: %w", err)
	}
	return domain.ArticleState{Read: st.Read, Saved: st.Saved}, nil
}

// States returns flags for the given links, links with nothing set are omitted
func (s *Store) States(ctx context.Context, links []string) (map[string]domain.ArticleState, error) {
	res := map[string]domain.ArticleState{}
	if len(links) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(`SELECT link, is_read, is_saved FROM article_state
		WHERE link IN (?) AND (is_read = 1 OR is_saved = 1)`, links)
	if err != nil {
		return nil, fmt.Errorf("build states query: %w", err)
	}
	var rows []stateSQL
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get states: %w", err)
	}
	for _, r := range rows {
		res[r.Link] = domain.ArticleState{Read: r.Read, Saved: r.Saved}
	}
	return res, nil
}

// ReadLinks returns all links marked read, most recently read first
func (s *Store) ReadLinks(ctx context.Context) ([]string, error) {
	res := []string{}
	if err := s.db.SelectContext(ctx, &res,
		"SELECT link FROM article_state WHERE is_read = 1 ORDER BY read_at DESC, link"); err != nil {
		return nil, fmt.Errorf("get read links: %w", err)
	}
	return res, nil
}

// SavedLinks returns all saved links, most recently saved first
func (s *Store) SavedLinks(ctx context.Context) ([]string, error) {
	res := []string{}
	if err := s.db.SelectContext(ctx, &res,
		"SELECT link FROM article_state WHERE is_saved = 1 ORDER BY saved_at DESC, link"); err != nil {
		return nil, fmt.Errorf("get saved links: %w", err)
	}
	return res, nil
}

// exec runs a single-link write with retries on sqlite lock errors
func (s *Store) exec(ctx context.Context, op, link, query string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("%s: empty link", op)
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, query, link); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil
	})
}

// criticalError wraps a non-lock error
type criticalError struct {
	err error
}

func (e *criticalError) Error() string { return e.err.Error() }

func (e *criticalError) Unwrap() error { return e.err }

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
