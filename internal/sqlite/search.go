package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

// searchLimit is the shared result budget of one search call, counted
// across artists and songs together.
const searchLimit = 100

const (
	searchArtistColumns = "a.id, a.database_id, a.database_title, a.name, a.letter_id, a.name_words, a.is_active"
	searchSongColumns   = "s.id, s.artist_id, s.database_id, s.database_title, s.source, s.title, s.artist_name, s.title_words, s.text_words, s.is_active"
)

// Search runs the cascading budgeted search over the active catalog set:
// artist names first, then song titles, then song bodies, each stage
// consuming what remains of the shared budget and terminating the cascade
// when it fills it. Artists come back sorted by name; songs list title
// matches before body matches, each block sorted by title. A query that
// yields no tokens returns an empty result with SearchDone false.
func (s *Store) Search(ctx context.Context, query string) (*types.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	tokens := tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return &types.SearchResult{Artists: []*types.Artist{}, Songs: []*types.Song{}}, nil
	}

	activeIDs, err := s.activeIDsLocked(ctx)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}

	// The longest token narrows the prefix scan the most.
	probe := longestToken(tokens)
	budget := searchLimit

	artists, err := s.searchArtists(ctx, probe, tokens, active, budget)
	if err != nil {
		return nil, err
	}
	tokenizer.SortByKey(artists, func(a *types.Artist) string { return a.Name })
	if len(artists) >= budget {
		return &types.SearchResult{Artists: artists, Songs: []*types.Song{}, SearchDone: true}, nil
	}

	titleSongs, err := s.searchSongs(ctx, "song_title_words", probe, tokens, active,
		budget-len(artists), false, nil)
	if err != nil {
		return nil, err
	}
	tokenizer.SortByKey(titleSongs, func(song *types.Song) string { return song.Title })
	if len(artists)+len(titleSongs) >= budget {
		return &types.SearchResult{Artists: artists, Songs: titleSongs, SearchDone: true}, nil
	}

	titleMatched := make(map[string]bool, len(titleSongs))
	for _, song := range titleSongs {
		titleMatched[song.ID] = true
	}

	textSongs, err := s.searchSongs(ctx, "song_text_words", probe, tokens, active,
		budget-len(artists)-len(titleSongs), true, titleMatched)
	if err != nil {
		return nil, err
	}
	tokenizer.SortByKey(textSongs, func(song *types.Song) string { return song.Title })

	return &types.SearchResult{
		Artists:    artists,
		Songs:      append(titleSongs, textSongs...),
		SearchDone: true,
	}, nil
}

// searchArtists scans the artist name-token index for entries starting
// with probe, keeping artists in the active set whose name tokens
// prefix-match every query token, up to limit. Candidates stream in
// insertion order so ties are stable.
func (s *Store) searchArtists(ctx context.Context, probe string, tokens []string, active map[string]bool, limit int) ([]*types.Artist, error) {
	lo, hi := prefixRange(probe)
	rows, err := s.catalog.QueryContext(ctx,
		"SELECT "+searchArtistColumns+" FROM artist_name_words w JOIN artists a ON a.id = w.artist_id"+
			" WHERE w.word >= ? AND w.word < ? ORDER BY a.rowid", lo, hi)
	if err != nil {
		return nil, fmt.Errorf("scan artist index: %w", err)
	}
	defer rows.Close()

	results := make([]*types.Artist, 0, limit)
	seen := make(map[string]bool)
	for rows.Next() {
		if len(results) >= limit {
			break
		}
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist candidate: %w", err)
		}
		if seen[artist.ID] || !active[artist.DatabaseID] {
			continue
		}
		seen[artist.ID] = true
		if matchesAll(tokens, artist.NameWords) {
			results = append(results, artist)
		}
	}
	return results, rows.Err()
}

// searchSongs scans one song token index the same way. With orTitle set,
// a token may satisfy the AND requirement via either the title or the
// body token set, so a body-matched song can still qualify because the
// query also matched its title. Songs in exclude are skipped without
// consuming budget.
func (s *Store) searchSongs(ctx context.Context, indexTable, probe string, tokens []string, active map[string]bool, limit int, orTitle bool, exclude map[string]bool) ([]*types.Song, error) {
	lo, hi := prefixRange(probe)
	rows, err := s.catalog.QueryContext(ctx,
		"SELECT "+searchSongColumns+" FROM "+indexTable+" w JOIN songs s ON s.id = w.song_id"+
			" WHERE w.word >= ? AND w.word < ? ORDER BY s.rowid", lo, hi)
	if err != nil {
		return nil, fmt.Errorf("scan song index: %w", err)
	}
	defer rows.Close()

	results := make([]*types.Song, 0, limit)
	seen := make(map[string]bool)
	for rows.Next() {
		if len(results) >= limit {
			break
		}
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song candidate: %w", err)
		}
		if seen[song.ID] || exclude[song.ID] || !active[song.DatabaseID] {
			continue
		}
		seen[song.ID] = true

		var ok bool
		if orTitle {
			ok = matchesAll(tokens, song.TitleWords, song.TextWords)
		} else {
			ok = matchesAll(tokens, song.TitleWords)
		}
		if ok {
			results = append(results, song)
		}
	}
	return results, rows.Err()
}

// matchesAll reports whether every token prefix-matches at least one word
// in any of the given word sets: logical AND across tokens, OR within one
// token's candidate words. Matching is anchored at token start; there is
// no substring matching.
func matchesAll(tokens []string, wordSets ...[]string) bool {
	for _, token := range tokens {
		matched := false
		for _, words := range wordSets {
			for _, word := range words {
				if strings.HasPrefix(word, token) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// longestToken picks the first longest token as the index probe.
func longestToken(tokens []string) string {
	best := tokens[0]
	for _, token := range tokens[1:] {
		if len(token) > len(best) {
			best = token
		}
	}
	return best
}
