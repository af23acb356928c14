package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

// textWordLimit caps the body token set per song: only the first twenty
// raw body tokens are indexed, which bounds the index size.
const textWordLimit = 20

// generateID mints a catalog id when the metadata supplies none.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// IngestCatalog converts a parsed catalog into denormalized, indexed rows
// and commits them in one transaction across all four collections. Song
// and artist ids are prefixed with the catalog id; duplicate source ids
// are dropped, first occurrence wins. Returns the catalog id, minted when
// meta.ID is empty. A failure leaves the store unchanged.
func (s *Store) IngestCatalog(ctx context.Context, meta types.DatabaseMeta, parsed *types.ParsedCatalog) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if meta.ID == "" {
		meta.ID = generateID()
	}

	err := inTx(ctx, s.catalog, func(tx *sql.Tx) error {
		return ingestTx(ctx, tx, meta, parsed)
	})
	if err != nil {
		return "", fmt.Errorf("ingest catalog %s: %w", meta.ID, err)
	}
	return meta.ID, nil
}

// DropCatalog deletes the catalog row and every song, artist, and letter
// belonging to the catalog, transactionally. Dropping an absent catalog
// is a no-op.
func (s *Store) DropCatalog(ctx context.Context, catalogID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if catalogID == "" {
		return types.ErrInvalidID
	}

	err := inTx(ctx, s.catalog, func(tx *sql.Tx) error {
		return dropCatalogTx(ctx, tx, catalogID)
	})
	if err != nil {
		return fmt.Errorf("drop catalog %s: %w", catalogID, err)
	}
	return nil
}

// ReingestAll re-fetches and re-parses every catalog from its source URL,
// then replaces the entire store content in a single transaction. All
// sources are fetched and parsed before the transaction opens; any fetch
// or parse failure aborts the whole operation with the store untouched,
// so no catalog can go stale relative to another. Re-ingested catalogs
// come back active. The optional progress callback reports fetch progress.
func (s *Store) ReingestAll(ctx context.Context, fetcher types.Fetcher, parse types.Parser, progress func(done, total int)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	databases, err := s.findDatabasesLocked(ctx)
	if err != nil {
		return err
	}

	type fetched struct {
		meta   types.DatabaseMeta
		parsed *types.ParsedCatalog
	}
	all := make([]fetched, 0, len(databases))
	for i, db := range databases {
		text, err := fetcher.Fetch(ctx, db.URL)
		if err != nil {
			return fmt.Errorf("fetch catalog %s: %w", db.ID, err)
		}
		parsed, err := parse(text)
		if err != nil {
			return fmt.Errorf("parse catalog %s: %w", db.ID, err)
		}
		all = append(all, fetched{
			meta: types.DatabaseMeta{
				ID:          db.ID,
				Title:       db.Title,
				URL:         db.URL,
				Description: db.Description,
				Size:        db.Size,
			},
			parsed: parsed,
		})
		if progress != nil {
			progress(i+1, len(databases))
		}
	}

	err = inTx(ctx, s.catalog, func(tx *sql.Tx) error {
		if err := clearCatalogsTx(ctx, tx); err != nil {
			return err
		}
		for _, item := range all {
			if err := ingestTx(ctx, tx, item.meta, item.parsed); err != nil {
				return fmt.Errorf("reingest catalog %s: %w", item.meta.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reingest all: %w", err)
	}
	return nil
}

// ingestTx inserts one catalog's denormalized rows within tx.
func ingestTx(ctx context.Context, tx *sql.Tx, meta types.DatabaseMeta, parsed *types.ParsedCatalog) error {
	songStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO songs (id, artist_id, database_id, database_title, source, title, artist_name, title_words, text_words, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)")
	if err != nil {
		return err
	}
	defer songStmt.Close()

	titleWordStmt, err := tx.PrepareContext(ctx, "INSERT INTO song_title_words (word, song_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer titleWordStmt.Close()

	textWordStmt, err := tx.PrepareContext(ctx, "INSERT INTO song_text_words (word, song_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer textWordStmt.Close()

	seenSongs := make(map[string]struct{}, len(parsed.Songs))
	for _, ps := range parsed.Songs {
		id := meta.ID + "/" + ps.ID
		if _, dup := seenSongs[id]; dup {
			continue
		}
		seenSongs[id] = struct{}{}

		titleWords := tokenizer.Unique(tokenizer.Tokenize(ps.Title))
		textWords := tokenizer.Tokenize(ps.Text)
		if len(textWords) > textWordLimit {
			textWords = textWords[:textWordLimit]
		}
		textWords = tokenizer.Unique(textWords)

		titleJSON, err := marshalWords(titleWords)
		if err != nil {
			return err
		}
		textJSON, err := marshalWords(textWords)
		if err != nil {
			return err
		}

		if _, err := songStmt.ExecContext(ctx, id, meta.ID+"/"+ps.ArtistID, meta.ID, meta.Title,
			ps.Source, ps.Title, ps.ArtistName, titleJSON, textJSON); err != nil {
			return fmt.Errorf("insert song %s: %w", id, err)
		}
		for _, word := range titleWords {
			if _, err := titleWordStmt.ExecContext(ctx, word, id); err != nil {
				return fmt.Errorf("index song title %s: %w", id, err)
			}
		}
		for _, word := range textWords {
			if _, err := textWordStmt.ExecContext(ctx, word, id); err != nil {
				return fmt.Errorf("index song text %s: %w", id, err)
			}
		}
	}

	artistStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO artists (id, database_id, database_title, name, letter_id, name_words, is_active) VALUES (?, ?, ?, ?, ?, ?, 1)")
	if err != nil {
		return err
	}
	defer artistStmt.Close()

	nameWordStmt, err := tx.PrepareContext(ctx, "INSERT INTO artist_name_words (word, artist_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer nameWordStmt.Close()

	seenArtists := make(map[string]struct{}, len(parsed.Artists))
	for _, pa := range parsed.Artists {
		id := meta.ID + "/" + pa.ID
		if _, dup := seenArtists[id]; dup {
			continue
		}
		seenArtists[id] = struct{}{}

		nameWords := tokenizer.Unique(tokenizer.Tokenize(pa.Name))
		nameJSON, err := marshalWords(nameWords)
		if err != nil {
			return err
		}

		if _, err := artistStmt.ExecContext(ctx, id, meta.ID, meta.Title, pa.Name,
			meta.ID+"/"+pa.Letter, nameJSON); err != nil {
			return fmt.Errorf("insert artist %s: %w", id, err)
		}
		for _, word := range nameWords {
			if _, err := nameWordStmt.ExecContext(ctx, word, id); err != nil {
				return fmt.Errorf("index artist name %s: %w", id, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO databases (id, title, url, description, size, song_count, artist_count, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, 1)",
		meta.ID, meta.Title, meta.URL, meta.Description, meta.Size,
		len(parsed.Songs), len(parsed.Artists)); err != nil {
		return fmt.Errorf("insert database row: %w", err)
	}

	seenLetters := make(map[string]struct{}, len(parsed.Letters))
	for _, pl := range parsed.Letters {
		id := meta.ID + "/" + pl.Letter
		if _, dup := seenLetters[id]; dup {
			continue
		}
		seenLetters[id] = struct{}{}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO letters (id, letter, database_id, artist_count) VALUES (?, ?, ?, ?)",
			id, pl.Letter, meta.ID, pl.ArtistCount); err != nil {
			return fmt.Errorf("insert letter %s: %w", id, err)
		}
	}

	return nil
}

// dropCatalogTx deletes one catalog's rows from all collections within tx.
func dropCatalogTx(ctx context.Context, tx *sql.Tx, catalogID string) error {
	stmts := []struct {
		query string
		arg   string
	}{
		{"DELETE FROM song_title_words WHERE song_id IN (SELECT id FROM songs WHERE database_id = ?)", catalogID},
		{"DELETE FROM song_text_words WHERE song_id IN (SELECT id FROM songs WHERE database_id = ?)", catalogID},
		{"DELETE FROM artist_name_words WHERE artist_id IN (SELECT id FROM artists WHERE database_id = ?)", catalogID},
		{"DELETE FROM songs WHERE database_id = ?", catalogID},
		{"DELETE FROM artists WHERE database_id = ?", catalogID},
		{"DELETE FROM letters WHERE database_id = ?", catalogID},
		{"DELETE FROM databases WHERE id = ?", catalogID},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.query, st.arg); err != nil {
			return err
		}
	}
	return nil
}

// clearCatalogsTx empties the four catalog collections and their token
// indices. Recents are untouched.
func clearCatalogsTx(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{
		"song_title_words", "song_text_words", "artist_name_words",
		"songs", "artists", "letters", "databases",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
