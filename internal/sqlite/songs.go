package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

const songColumns = "id, artist_id, database_id, database_title, source, title, artist_name, title_words, text_words, is_active"

func scanSong(row interface{ Scan(...any) error }) (*types.Song, error) {
	var song types.Song
	var titleWords, textWords string
	err := row.Scan(&song.ID, &song.ArtistID, &song.DatabaseID, &song.DatabaseTitle,
		&song.Source, &song.Title, &song.ArtistName, &titleWords, &textWords, &song.IsActive)
	if err != nil {
		return nil, err
	}
	if song.TitleWords, err = unmarshalWords(titleWords); err != nil {
		return nil, err
	}
	if song.TextWords, err = unmarshalWords(textWords); err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]*types.Song, error) {
	rows, err := s.catalog.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var songs []*types.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// FindSongsByArtist lists the artist's songs sorted by title.
func (s *Store) FindSongsByArtist(ctx context.Context, artistID string) ([]*types.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if artistID == "" {
		return nil, types.ErrInvalidID
	}

	songs, err := s.querySongs(ctx,
		"SELECT "+songColumns+" FROM songs WHERE artist_id = ? ORDER BY rowid", artistID)
	if err != nil {
		return nil, err
	}

	tokenizer.SortByKey(songs, func(song *types.Song) string { return song.Title })
	return songs, nil
}

// FindSongsByDatabase lists one catalog's songs sorted by title.
func (s *Store) FindSongsByDatabase(ctx context.Context, catalogID string) ([]*types.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.findSongsByDatabaseLocked(ctx, catalogID)
}

func (s *Store) findSongsByDatabaseLocked(ctx context.Context, catalogID string) ([]*types.Song, error) {
	if catalogID == "" {
		return nil, types.ErrInvalidID
	}

	songs, err := s.querySongs(ctx,
		"SELECT "+songColumns+" FROM songs WHERE database_id = ? ORDER BY rowid", catalogID)
	if err != nil {
		return nil, err
	}

	tokenizer.SortByKey(songs, func(song *types.Song) string { return song.Title })
	return songs, nil
}

// FindSongsByRange returns a page of songs in storage order, with the
// page itself sorted by title. An empty catalogID scopes the page to the
// active catalog set.
func (s *Store) FindSongsByRange(ctx context.Context, offset, limit int, catalogID string) ([]*types.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	ids, err := s.scopeIDs(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	songs, err := s.querySongs(ctx,
		"SELECT "+songColumns+" FROM songs WHERE database_id IN ("+placeholders(len(ids))+") ORDER BY rowid LIMIT ? OFFSET ?",
		append(toAnySlice(ids), limit, offset)...)
	if err != nil {
		return nil, err
	}

	tokenizer.SortByKey(songs, func(song *types.Song) string { return song.Title })
	return songs, nil
}

// GetSong returns the song by id, or ErrNotFound.
func (s *Store) GetSong(ctx context.Context, songID string) (*types.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.getSongLocked(ctx, songID)
}

func (s *Store) getSongLocked(ctx context.Context, songID string) (*types.Song, error) {
	if songID == "" {
		return nil, types.ErrInvalidID
	}

	song, err := scanSong(s.catalog.QueryRowContext(ctx,
		"SELECT "+songColumns+" FROM songs WHERE id = ?", songID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song %s: %w", songID, err)
	}
	return song, nil
}

// GetSongs returns the songs for the given ids in input order, skipping
// ids with no matching song.
func (s *Store) GetSongs(ctx context.Context, songIDs []string) ([]*types.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	songs := make([]*types.Song, 0, len(songIDs))
	for _, id := range songIDs {
		song, err := s.getSongLocked(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}
