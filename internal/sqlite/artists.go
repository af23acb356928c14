package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

const artistColumns = "id, database_id, database_title, name, letter_id, name_words, is_active"

func scanArtist(row interface{ Scan(...any) error }) (*types.Artist, error) {
	var artist types.Artist
	var nameWords string
	err := row.Scan(&artist.ID, &artist.DatabaseID, &artist.DatabaseTitle,
		&artist.Name, &artist.LetterID, &nameWords, &artist.IsActive)
	if err != nil {
		return nil, err
	}
	artist.NameWords, err = unmarshalWords(nameWords)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (s *Store) queryArtists(ctx context.Context, query string, args ...any) ([]*types.Artist, error) {
	rows, err := s.catalog.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var artists []*types.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// FindArtists lists artists sorted by name. An empty catalogID scopes the
// listing to the active catalog set; a non-empty one bypasses the filter.
func (s *Store) FindArtists(ctx context.Context, catalogID string) ([]*types.Artist, error) {
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

	artists, err := s.queryArtists(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE database_id IN ("+placeholders(len(ids))+") ORDER BY rowid",
		toAnySlice(ids)...)
	if err != nil {
		return nil, err
	}

	tokenizer.SortByKey(artists, func(a *types.Artist) string { return a.Name })
	return artists, nil
}

// FindArtistsByLetter lists the artists whose names begin with letter,
// sorted by name and scoped like FindArtists.
func (s *Store) FindArtistsByLetter(ctx context.Context, letter, catalogID string) ([]*types.Artist, error) {
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

	letterIDs := make([]string, len(ids))
	for i, id := range ids {
		letterIDs[i] = id + "/" + letter
	}

	artists, err := s.queryArtists(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE letter_id IN ("+placeholders(len(letterIDs))+") ORDER BY rowid",
		toAnySlice(letterIDs)...)
	if err != nil {
		return nil, err
	}

	tokenizer.SortByKey(artists, func(a *types.Artist) string { return a.Name })
	return artists, nil
}

// FindActiveLetters groups letter rows across the catalog scope, summing
// artist counts per letter, sorted alphabetically. This builds the
// alphabetic index without scanning all artists.
func (s *Store) FindActiveLetters(ctx context.Context, catalogID string) ([]*types.GroupedLetter, error) {
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

	rows, err := s.catalog.QueryContext(ctx,
		"SELECT letter, SUM(artist_count) FROM letters WHERE database_id IN ("+placeholders(len(ids))+") GROUP BY letter",
		toAnySlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query letters: %w", err)
	}
	defer rows.Close()

	var letters []*types.GroupedLetter
	for rows.Next() {
		var gl types.GroupedLetter
		if err := rows.Scan(&gl.Letter, &gl.ArtistCount); err != nil {
			return nil, fmt.Errorf("scan letter: %w", err)
		}
		letters = append(letters, &gl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(letters, func(i, j int) bool { return letters[i].Letter < letters[j].Letter })
	return letters, nil
}

// GetArtist returns the artist by id, or ErrNotFound.
func (s *Store) GetArtist(ctx context.Context, artistID string) (*types.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if artistID == "" {
		return nil, types.ErrInvalidID
	}

	artist, err := scanArtist(s.catalog.QueryRowContext(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE id = ?", artistID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %s: %w", artistID, err)
	}
	return artist, nil
}
