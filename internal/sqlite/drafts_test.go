package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songvault/songvault/internal/songpro"
	"github.com/songvault/songvault/pkg/types"
)

func createTestDraft(t *testing.T, s *Store, title string) int64 {
	t.Helper()
	id, err := s.CreateDraft(context.Background(), title)
	require.NoError(t, err)
	return id
}

func TestCreateDraft(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id := createTestDraft(t, s, "My Songs")

	draft, err := s.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "My Songs", draft.Title)
	assert.Equal(t, 2, draft.SongCount)
	assert.Equal(t, 1, draft.ArtistCount)

	content, err := s.GetDraftContent(ctx, id)
	require.NoError(t, err)
	assert.True(t, content.IsActive)
	assert.False(t, content.SavedAt.IsZero())

	// The seed blob parses into the counts the shell claims.
	parsed, err := songpro.Parse(content.Data)
	require.NoError(t, err)
	assert.Len(t, parsed.Songs, 2)
	assert.Len(t, parsed.Artists, 1)
}

func TestGetDraftNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.GetDraft(context.Background(), 42)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.GetDraftContent(context.Background(), 42)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFindDraftsSorted(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	createTestDraft(t, s, "Zebra Book")
	createTestDraft(t, s, "Alpha Book")

	drafts, err := s.FindDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Alpha Book", drafts[0].Title)
	assert.Equal(t, "Zebra Book", drafts[1].Title)
}

func TestSaveDraftReplacesContent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")

	source := "@title=Only Song\n@artist=Only Artist\n\nthe only verse"
	require.NoError(t, s.SaveDraft(ctx, id, source, songpro.Parse))

	content, err := s.GetDraftContent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, source, content.Data)

	draft, err := s.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.SongCount)
	assert.Equal(t, 1, draft.ArtistCount)

	// Saves replace the content row instead of accumulating versions.
	var contentRows int
	require.NoError(t, s.drafts.QueryRow(
		"SELECT COUNT(*) FROM file_contents WHERE database_id = ?", id).Scan(&contentRows))
	assert.Equal(t, 1, contentRows)
}

func TestSaveDraftNotFound(t *testing.T) {
	s := setupStore(t)
	err := s.SaveDraft(context.Background(), 42, "@title=T\n@artist=A\n\nx", songpro.Parse)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSaveDraftRejectsBadSource(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")

	err := s.SaveDraft(ctx, id, "@artist=A\n\nno title here", songpro.Parse)
	require.Error(t, err)

	// The previous content survives a failed save.
	content, err := s.GetDraftContent(ctx, id)
	require.NoError(t, err)
	parsed, err := songpro.Parse(content.Data)
	require.NoError(t, err)
	assert.Len(t, parsed.Songs, 2)
}

func TestPromoteDraft(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "My Book")

	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	db, err := s.GetDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	assert.Equal(t, "My Book", db.Title)
	assert.Equal(t, 2, db.SongCount)
	assert.True(t, db.IsActive)

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, draftCatalogID(id)+"/some-artist-song1", songs[0].ID)
}

func TestSaveDraftRefreshesPromotedCopy(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	source := "@title=Fresh Song\n@artist=Fresh Artist\n\nbrand new words"
	require.NoError(t, s.SaveDraft(ctx, id, source, songpro.Parse))

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Fresh Song", songs[0].Title)

	result, err := s.Search(ctx, "brand")
	require.NoError(t, err)
	require.Len(t, result.Songs, 1)
}

func TestDraftMutationsRequirePromotion(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")

	added := "@title=New\n@artist=Someone\n\nwords"
	assert.ErrorIs(t, s.AppendSongs(ctx, id, added, songpro.Parse), types.ErrDraftNotPromoted)
	assert.ErrorIs(t, s.ReplaceSongs(ctx, id, nil, added, songpro.Parse), types.ErrDraftNotPromoted)
	assert.ErrorIs(t, s.RemoveSongs(ctx, id, nil, songpro.Parse), types.ErrDraftNotPromoted)
}

func TestAppendSongs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	added := "@title=Third Song\n@artist=Another Artist\n\nthird verse"
	require.NoError(t, s.AppendSongs(ctx, id, added, songpro.Parse))

	draft, err := s.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, draft.SongCount)
	assert.Equal(t, 2, draft.ArtistCount)

	content, err := s.GetDraftContent(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(content.Data, added))

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	assert.Len(t, songs, 3)
}

func TestRemoveSongs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	dropID := draftCatalogID(id) + "/some-artist-song1"
	require.NoError(t, s.RemoveSongs(ctx, id, []string{dropID}, songpro.Parse))

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "song2", songs[0].Title)

	draft, err := s.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.SongCount)
}

func TestRemoveAllSongs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	dropIDs := []string{
		draftCatalogID(id) + "/some-artist-song1",
		draftCatalogID(id) + "/some-artist-song2",
	}
	require.NoError(t, s.RemoveSongs(ctx, id, dropIDs, songpro.Parse))

	draft, err := s.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, draft.SongCount)
	assert.Equal(t, 0, draft.ArtistCount)

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestReplaceSongs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	replacement := "@title=Reworked\n@artist=Some artist\n\nnew lyrics entirely"
	replaceID := draftCatalogID(id) + "/some-artist-song2"
	require.NoError(t, s.ReplaceSongs(ctx, id, []string{replaceID}, replacement, songpro.Parse))

	songs, err := s.FindSongsByDatabase(ctx, draftCatalogID(id))
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "Reworked", songs[0].Title)
	assert.Equal(t, "song1", songs[1].Title)
}

func TestDeleteDraft(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := createTestDraft(t, s, "Book")
	require.NoError(t, s.PromoteDraft(ctx, id, songpro.Parse))

	require.NoError(t, s.DeleteDraft(ctx, id))

	_, err := s.GetDraft(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.GetDraftContent(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The promoted copy stays until dropped explicitly.
	_, err = s.GetDatabase(ctx, draftCatalogID(id))
	assert.NoError(t, err)
	require.NoError(t, s.DropCatalog(ctx, draftCatalogID(id)))
	_, err = s.GetDatabase(ctx, draftCatalogID(id))
	assert.ErrorIs(t, err, types.ErrNotFound)
}
