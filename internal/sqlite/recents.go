package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/songvault/songvault/pkg/types"
)

// recentsLimit bounds the recents collection; every upsert trims entries
// older than the most recent hundred.
const recentsLimit = 100

// AddRecentSong upserts a recent entry for the song, keyed "song:<id>",
// with a denormalized snapshot so the entry survives catalog removal.
func (s *Store) AddRecentSong(ctx context.Context, song *types.Song) error {
	payload, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("marshal song snapshot: %w", err)
	}
	return s.addRecent(ctx, "song:"+song.ID, types.RecentSong, payload)
}

// AddRecentArtist upserts a recent entry for the artist, keyed
// "artist:<name>".
func (s *Store) AddRecentArtist(ctx context.Context, artist *types.Artist) error {
	payload, err := json.Marshal(artist)
	if err != nil {
		return fmt.Errorf("marshal artist snapshot: %w", err)
	}
	return s.addRecent(ctx, "artist:"+artist.Name, types.RecentArtist, payload)
}

func (s *Store) addRecent(ctx context.Context, id string, kind types.RecentKind, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	err := inTx(ctx, s.catalog, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO recents (id, kind, viewed_at, payload) VALUES (?, ?, ?, ?)",
			id, string(kind), time.Now().UnixNano(), string(payload)); err != nil {
			return err
		}
		// Trim entries older than the most recent hundred.
		_, err := tx.ExecContext(ctx,
			"DELETE FROM recents WHERE id NOT IN (SELECT id FROM recents ORDER BY viewed_at DESC, rowid DESC LIMIT ?)",
			recentsLimit)
		return err
	})
	if err != nil {
		return fmt.Errorf("add recent %s: %w", id, err)
	}
	return nil
}

// FindAllRecents returns every recent entry, most recent first.
func (s *Store) FindAllRecents(ctx context.Context) ([]*types.RecentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.catalog.QueryContext(ctx,
		"SELECT id, kind, viewed_at, payload FROM recents ORDER BY viewed_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("query recents: %w", err)
	}
	defer rows.Close()

	var entries []*types.RecentEntry
	for rows.Next() {
		var (
			entry    types.RecentEntry
			kind     string
			viewedAt int64
			payload  string
		)
		if err := rows.Scan(&entry.ID, &kind, &viewedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		entry.Kind = types.RecentKind(kind)
		entry.ViewedAt = time.Unix(0, viewedAt)

		switch entry.Kind {
		case types.RecentSong:
			entry.Song = &types.Song{}
			err = json.Unmarshal([]byte(payload), entry.Song)
		case types.RecentArtist:
			entry.Artist = &types.Artist{}
			err = json.Unmarshal([]byte(payload), entry.Artist)
		default:
			err = fmt.Errorf("unknown recent kind %q", kind)
		}
		if err != nil {
			return nil, fmt.Errorf("decode recent %s: %w", entry.ID, err)
		}

		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
