package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songvault/songvault/pkg/types"
)

// setupStore opens a Store in a temp dir, closed on test cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Open(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// twoArtistCatalog is a small parsed catalog used across tests: two
// artists, three songs, two letter groups.
func twoArtistCatalog() *types.ParsedCatalog {
	return &types.ParsedCatalog{
		Songs: []types.ParsedSong{
			{ID: "s1", ArtistID: "a1", Title: "Morning Light", ArtistName: "Abba", Text: "walking in the morning light", Source: "@title=Morning Light\n@artist=Abba\n\nwalking in the morning light"},
			{ID: "s2", ArtistID: "a1", Title: "Evening Star", ArtistName: "Abba", Text: "the evening star is shining", Source: "@title=Evening Star\n@artist=Abba\n\nthe evening star is shining"},
			{ID: "s3", ArtistID: "a2", Title: "Back Home", ArtistName: "Beatles", Text: "take me back home tonight", Source: "@title=Back Home\n@artist=Beatles\n\ntake me back home tonight"},
		},
		Artists: []types.ParsedArtist{
			{ID: "a1", Name: "Abba", Letter: "A"},
			{ID: "a2", Name: "Beatles", Letter: "B"},
		},
		Letters: []types.ParsedLetter{
			{Letter: "A", ArtistCount: 1},
			{Letter: "B", ArtistCount: 1},
		},
	}
}

func ingestTestCatalog(t *testing.T, s *Store, id, title string) string {
	t.Helper()
	got, err := s.IngestCatalog(context.Background(), types.DatabaseMeta{ID: id, Title: title}, twoArtistCatalog())
	require.NoError(t, err)
	return got
}

// generatedCatalog builds a catalog of n artists with one song each; every
// artist name and song body contains the shared token "common".
func generatedCatalog(n int) *types.ParsedCatalog {
	catalog := &types.ParsedCatalog{
		Letters: []types.ParsedLetter{{Letter: "C", ArtistCount: n}},
	}
	for i := 0; i < n; i++ {
		artistID := fmt.Sprintf("a%03d", i)
		catalog.Artists = append(catalog.Artists, types.ParsedArtist{
			ID:     artistID,
			Name:   fmt.Sprintf("Common Artist %03d", i),
			Letter: "C",
		})
		catalog.Songs = append(catalog.Songs, types.ParsedSong{
			ID:         fmt.Sprintf("s%03d", i),
			ArtistID:   artistID,
			Title:      fmt.Sprintf("Common Song %03d", i),
			ArtistName: fmt.Sprintf("Common Artist %03d", i),
			Text:       "common words all over",
			Source:     "irrelevant",
		})
	}
	return catalog
}

func TestOpenClose(t *testing.T) {
	s := New()
	config := types.Config{DataDir: t.TempDir()}

	require.NoError(t, s.Open(config))
	assert.ErrorIs(t, s.Open(config), types.ErrAlreadyOpen)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	_, err := s.FindDatabases(context.Background())
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestOpenValidatesConfig(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Open(types.Config{}), types.ErrDataDirEmpty)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	config := types.Config{DataDir: t.TempDir()}

	s := New()
	require.NoError(t, s.Open(config))
	ingestTestCatalog(t, s, "db1", "First Catalog")
	require.NoError(t, s.Close())

	s = New()
	require.NoError(t, s.Open(config))
	defer s.Close()

	db, err := s.GetDatabase(ctx, "db1")
	require.NoError(t, err)
	assert.Equal(t, "First Catalog", db.Title)
	assert.Equal(t, 3, db.SongCount)

	songs, err := s.FindSongsByDatabase(ctx, "db1")
	require.NoError(t, err)
	assert.Len(t, songs, 3)
}
