package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

const databaseColumns = "id, title, url, description, size, song_count, artist_count, is_active"

func scanDatabase(row interface{ Scan(...any) error }) (*types.Database, error) {
	var db types.Database
	err := row.Scan(&db.ID, &db.Title, &db.URL, &db.Description, &db.Size,
		&db.SongCount, &db.ArtistCount, &db.IsActive)
	if err != nil {
		return nil, err
	}
	return &db, nil
}

// FindDatabases lists all catalogs sorted by title, active or not.
func (s *Store) FindDatabases(ctx context.Context) ([]*types.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.findDatabasesLocked(ctx)
}

func (s *Store) findDatabasesLocked(ctx context.Context) ([]*types.Database, error) {
	rows, err := s.catalog.QueryContext(ctx, "SELECT "+databaseColumns+" FROM databases ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query databases: %w", err)
	}
	defer rows.Close()

	var databases []*types.Database
	for rows.Next() {
		db, err := scanDatabase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan database: %w", err)
		}
		databases = append(databases, db)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tokenizer.SortByKey(databases, func(db *types.Database) string { return db.Title })
	return databases, nil
}

// GetDatabase returns the catalog row by id, or ErrNotFound.
func (s *Store) GetDatabase(ctx context.Context, catalogID string) (*types.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.getDatabaseLocked(ctx, catalogID)
}

func (s *Store) getDatabaseLocked(ctx context.Context, catalogID string) (*types.Database, error) {
	if catalogID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := scanDatabase(s.catalog.QueryRowContext(ctx,
		"SELECT "+databaseColumns+" FROM databases WHERE id = ?", catalogID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get database %s: %w", catalogID, err)
	}
	return db, nil
}

// SetActive flips the catalog's active flag. Only the catalog row changes;
// song and artist active flags stay as ingestion-time snapshots.
func (s *Store) SetActive(ctx context.Context, catalogID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if catalogID == "" {
		return types.ErrInvalidID
	}

	res, err := s.catalog.ExecContext(ctx,
		"UPDATE databases SET is_active = ? WHERE id = ?", boolToInt(active), catalogID)
	if err != nil {
		return fmt.Errorf("set active %s: %w", catalogID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ActiveDatabaseIDs returns the ids of all catalogs currently enabled for
// browsing and search.
func (s *Store) ActiveDatabaseIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.activeIDsLocked(ctx)
}

func (s *Store) activeIDsLocked(ctx context.Context) ([]string, error) {
	rows, err := s.catalog.QueryContext(ctx, "SELECT id FROM databases WHERE is_active = 1 ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query active databases: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActiveSongCount sums the song counts of the active catalog set.
func (s *Store) ActiveSongCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	var count int
	err := s.catalog.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(song_count), 0) FROM databases WHERE is_active = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sum active song counts: %w", err)
	}
	return count, nil
}

// scopeIDs resolves the catalog scope of a find operation: an explicit
// catalog id bypasses the active filter, otherwise the current active set
// applies. Callers must hold s.mu.
func (s *Store) scopeIDs(ctx context.Context, catalogID string) ([]string, error) {
	if catalogID != "" {
		return []string{catalogID}, nil
	}
	return s.activeIDsLocked(ctx)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
