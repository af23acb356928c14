package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

// draftSeedSource is the two-song example a new draft starts from.
const draftSeedSource = "@title=song1\n@artist=Some artist\n\n#1.\nText[Ami] to be [Fmaj]continued\n\n---\n\n@title=song2\n@artist=Some artist\n\n#1.\nText[Ami] to be [Fmaj]continued"

// songSourceSeparator joins per-song source fragments when a draft's full
// source text is reconstructed.
const songSourceSeparator = "\n---\n"

// CreateDraft creates a draft catalog shell seeded with a two-song
// example source and returns its id.
func (s *Store) CreateDraft(ctx context.Context, title string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	var id int64
	err := inTx(ctx, s.drafts, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO file_databases (title, song_count, artist_count) VALUES (?, 2, 1)", title)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO file_contents (database_id, data, is_active, saved_at) VALUES (?, ?, 1, ?)",
			id, draftSeedSource, time.Now().UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create draft: %w", err)
	}
	return id, nil
}

// GetDraft returns the draft shell by id, or ErrNotFound.
func (s *Store) GetDraft(ctx context.Context, id int64) (*types.FileDatabase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.getDraftLocked(ctx, id)
}

func (s *Store) getDraftLocked(ctx context.Context, id int64) (*types.FileDatabase, error) {
	var draft types.FileDatabase
	err := s.drafts.QueryRowContext(ctx,
		"SELECT id, title, song_count, artist_count FROM file_databases WHERE id = ?", id).
		Scan(&draft.ID, &draft.Title, &draft.SongCount, &draft.ArtistCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft %d: %w", id, err)
	}
	return &draft, nil
}

// FindDrafts lists all draft shells sorted by title.
func (s *Store) FindDrafts(ctx context.Context) ([]*types.FileDatabase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.drafts.QueryContext(ctx,
		"SELECT id, title, song_count, artist_count FROM file_databases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*types.FileDatabase
	for rows.Next() {
		var draft types.FileDatabase
		if err := rows.Scan(&draft.ID, &draft.Title, &draft.SongCount, &draft.ArtistCount); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, &draft)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tokenizer.SortByKey(drafts, func(d *types.FileDatabase) string { return d.Title })
	return drafts, nil
}

// GetDraftContent returns the draft's active content blob, or ErrNotFound.
func (s *Store) GetDraftContent(ctx context.Context, id int64) (*types.FileDatabaseContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.getDraftContentLocked(ctx, id)
}

func (s *Store) getDraftContentLocked(ctx context.Context, id int64) (*types.FileDatabaseContent, error) {
	var (
		content types.FileDatabaseContent
		savedAt string
	)
	err := s.drafts.QueryRowContext(ctx,
		"SELECT id, database_id, data, is_active, saved_at FROM file_contents WHERE database_id = ? AND is_active = 1 ORDER BY id LIMIT 1",
		id).Scan(&content.ID, &content.DatabaseID, &content.Data, &content.IsActive, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft content %d: %w", id, err)
	}
	if content.SavedAt, err = time.Parse(time.RFC3339, savedAt); err != nil {
		return nil, fmt.Errorf("parse draft content timestamp: %w", err)
	}
	return &content, nil
}

// SaveDraft re-parses the source, replaces the draft's content blob
// (delete-then-insert, never update-in-place), and updates the shell's
// counts. If the draft already has a promoted catalog in the indexed
// store, the promotion is re-run under the same catalog id.
func (s *Store) SaveDraft(ctx context.Context, id int64, source string, parse types.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.saveDraftLocked(ctx, id, source, parse)
}

func (s *Store) saveDraftLocked(ctx context.Context, id int64, source string, parse types.Parser) error {
	draft, err := s.getDraftLocked(ctx, id)
	if err != nil {
		return err
	}

	parsed, err := parse(source)
	if err != nil {
		return fmt.Errorf("parse draft %d: %w", id, err)
	}

	err = inTx(ctx, s.drafts, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE file_databases SET song_count = ?, artist_count = ? WHERE id = ?",
			len(parsed.Songs), len(parsed.Artists), id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM file_contents WHERE database_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO file_contents (database_id, data, is_active, saved_at) VALUES (?, ?, 1, ?)",
			id, source, time.Now().UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		return fmt.Errorf("save draft %d: %w", id, err)
	}

	catalogID := draftCatalogID(id)
	if _, err := s.getDatabaseLocked(ctx, catalogID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil // never promoted, nothing to refresh
		}
		return err
	}
	return s.promoteParsedLocked(ctx, catalogID, draft.Title, parsed)
}

// AppendSongs appends song source text to the draft and saves it. The
// draft must have a promoted catalog.
func (s *Store) AppendSongs(ctx context.Context, id int64, addedSource string, parse types.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requirePromotedLocked(ctx, id); err != nil {
		return err
	}

	newSource := addedSource
	content, err := s.getDraftContentLocked(ctx, id)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return err
	}
	if err == nil && content.Data != "" {
		newSource = content.Data + songSourceSeparator + addedSource
	}

	return s.saveDraftLocked(ctx, id, newSource, parse)
}

// ReplaceSongs swaps the songs with the given ids for newSource. The full
// catalog source is reconstructed from the kept songs' own stored source
// fragments plus the replacement, then saved and re-promoted; every
// mutation goes through the same parse-and-ingest path so the indices
// cannot drift from the source text.
func (s *Store) ReplaceSongs(ctx context.Context, id int64, songIDs []string, newSource string, parse types.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requirePromotedLocked(ctx, id); err != nil {
		return err
	}

	sources, err := s.keptSongSourcesLocked(ctx, id, songIDs)
	if err != nil {
		return err
	}
	sources = append(sources, newSource)

	return s.saveDraftLocked(ctx, id, strings.Join(sources, songSourceSeparator), parse)
}

// RemoveSongs deletes the songs with the given ids from the draft by
// rebuilding the source without them.
func (s *Store) RemoveSongs(ctx context.Context, id int64, songIDs []string, parse types.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requirePromotedLocked(ctx, id); err != nil {
		return err
	}

	sources, err := s.keptSongSourcesLocked(ctx, id, songIDs)
	if err != nil {
		return err
	}

	return s.saveDraftLocked(ctx, id, strings.Join(sources, songSourceSeparator), parse)
}

// DeleteDraft removes the draft shell and its content rows. A promoted
// copy in the indexed store is left alone; drop it with DropCatalog.
func (s *Store) DeleteDraft(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	err := inTx(ctx, s.drafts, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM file_databases WHERE id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM file_contents WHERE database_id = ?", id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete draft %d: %w", id, err)
	}
	return nil
}

// PromoteDraft parses the draft's current content and ingests it into the
// indexed store under the draft's id, replacing any prior promoted copy.
func (s *Store) PromoteDraft(ctx context.Context, id int64, parse types.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	draft, err := s.getDraftLocked(ctx, id)
	if err != nil {
		return err
	}
	content, err := s.getDraftContentLocked(ctx, id)
	if err != nil {
		return err
	}
	parsed, err := parse(content.Data)
	if err != nil {
		return fmt.Errorf("parse draft %d: %w", id, err)
	}

	return s.promoteParsedLocked(ctx, draftCatalogID(id), draft.Title, parsed)
}

// promoteParsedLocked replaces the promoted copy of a draft in the
// indexed store: drop and re-ingest in one transaction.
func (s *Store) promoteParsedLocked(ctx context.Context, catalogID, title string, parsed *types.ParsedCatalog) error {
	meta := types.DatabaseMeta{ID: catalogID, Title: title}
	err := inTx(ctx, s.catalog, func(tx *sql.Tx) error {
		if err := dropCatalogTx(ctx, tx, catalogID); err != nil {
			return err
		}
		return ingestTx(ctx, tx, meta, parsed)
	})
	if err != nil {
		return fmt.Errorf("promote draft catalog %s: %w", catalogID, err)
	}
	return nil
}

// requirePromotedLocked gates draft song mutations on the existence of a
// promoted catalog, which the reconstruction reads song sources from.
func (s *Store) requirePromotedLocked(ctx context.Context, id int64) error {
	_, err := s.getDatabaseLocked(ctx, draftCatalogID(id))
	if errors.Is(err, types.ErrNotFound) {
		return types.ErrDraftNotPromoted
	}
	return err
}

// keptSongSourcesLocked returns the source fragments of the promoted
// catalog's songs, title-sorted, minus the given song ids.
func (s *Store) keptSongSourcesLocked(ctx context.Context, id int64, dropIDs []string) ([]string, error) {
	songs, err := s.findSongsByDatabaseLocked(ctx, draftCatalogID(id))
	if err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(dropIDs))
	for _, songID := range dropIDs {
		drop[songID] = true
	}

	var sources []string
	for _, song := range songs {
		if !drop[song.ID] {
			sources = append(sources, song.Source)
		}
	}
	return sources, nil
}

// draftCatalogID maps a draft id into the catalog identifier space.
func draftCatalogID(id int64) string {
	return strconv.FormatInt(id, 10)
}
