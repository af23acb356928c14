// Package sqlite implements the embedded catalog store: four coupled
// catalog collections plus recents in one SQLite file, and draft catalog
// shells with their content blobs in a second one.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/songvault/songvault/pkg/types"
)

// Store file names under Config.DataDir.
const (
	catalogDBFile = "catalog.db"
	draftsDBFile  = "drafts.db"
)

// Store is the handle to the embedded song catalog store. All reads and
// writes go through it; multi-collection writes run in a single
// transaction, so readers never observe a partially committed ingestion.
type Store struct {
	mu      sync.RWMutex
	open    bool
	config  types.Config
	catalog *sql.DB
	drafts  *sql.DB
}

// New creates an unopened Store; call Open with a Config to initialize.
func New() *Store {
	return &Store{}
}

// Open initializes the store under config.DataDir, creating the directory
// and schema as needed. Returns ErrAlreadyOpen if called while open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	catalog, err := openDB(filepath.Join(config.DataDir, catalogDBFile), catalogDDL)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}

	drafts, err := openDB(filepath.Join(config.DataDir, draftsDBFile), draftsDDL)
	if err != nil {
		catalog.Close()
		return fmt.Errorf("open drafts store: %w", err)
	}

	s.catalog = catalog
	s.drafts = drafts
	s.config = config
	s.open = true

	return nil
}

// Close releases the underlying database handles. Close is idempotent;
// after it returns, all operations fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	var firstErr error
	if err := s.catalog.Close(); err != nil {
		firstErr = err
	}
	if err := s.drafts.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	s.catalog = nil
	s.drafts = nil
	s.open = false

	return firstErr
}

func openDB(path string, ddl []string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection serializes all transactions against the file,
	// which is the store's concurrency model.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, err
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return db, nil
}

// checkOpen returns ErrStoreClosed when the store is not open. Callers
// must hold s.mu.
func (s *Store) checkOpen() error {
	if !s.open {
		return types.ErrStoreClosed
	}
	return nil
}

// marshalWords encodes a token set as its JSON column representation.
func marshalWords(words []string) (string, error) {
	if words == nil {
		words = []string{}
	}
	raw, err := json.Marshal(words)
	if err != nil {
		return "", fmt.Errorf("marshal words: %w", err)
	}
	return string(raw), nil
}

func unmarshalWords(raw string) ([]string, error) {
	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, fmt.Errorf("unmarshal words: %w", err)
	}
	return words, nil
}

// prefixRange returns the half-open [lo, hi) bounds selecting every token
// that starts with probe. Tokens are lowercase a-z, so appending the
// character after 'z' caps the range.
func prefixRange(probe string) (lo, hi string) {
	return probe, probe + "{"
}

// placeholders builds a "?, ?, ..." list of n parameters.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}

func toAnySlice(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// inTx runs fn inside one transaction on db, rolling back on error.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
