package songpro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songvault/songvault/pkg/types"
)

const sampleSource = "@title=song1\n@artist=Some artist\n\n#1.\nText[Ami] to be [Fmaj]continued\n\n---\n\n@title=song2\n@artist=Some artist\n\n#1.\nText[Ami] to be [Fmaj]continued"

func TestParseSample(t *testing.T) {
	catalog, err := Parse(sampleSource)
	require.NoError(t, err)

	require.Len(t, catalog.Songs, 2)
	require.Len(t, catalog.Artists, 1)
	require.Len(t, catalog.Letters, 1)

	assert.Equal(t, "song1", catalog.Songs[0].Title)
	assert.Equal(t, "song2", catalog.Songs[1].Title)
	assert.Equal(t, "Some artist", catalog.Songs[0].ArtistName)
	assert.Equal(t, "some-artist", catalog.Songs[0].ArtistID)
	assert.Equal(t, "some-artist-song1", catalog.Songs[0].ID)
	assert.Contains(t, catalog.Songs[0].Text, "Text[Ami] to be")

	artist := catalog.Artists[0]
	assert.Equal(t, "some-artist", artist.ID)
	assert.Equal(t, "Some artist", artist.Name)
	assert.Equal(t, "S", artist.Letter)

	assert.Equal(t, "S", catalog.Letters[0].Letter)
	assert.Equal(t, 1, catalog.Letters[0].ArtistCount)
}

func TestParseSourceRoundTrip(t *testing.T) {
	catalog, err := Parse(sampleSource)
	require.NoError(t, err)

	// Rejoining the per-song sources and reparsing yields the same records.
	var sources []string
	for _, song := range catalog.Songs {
		sources = append(sources, song.Source)
	}
	again, err := Parse(strings.Join(sources, "\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, catalog, again)
}

func TestParseEmptySource(t *testing.T) {
	for _, source := range []string{"", "   \n", "---"} {
		catalog, err := Parse(source)
		require.NoError(t, err)
		assert.Empty(t, catalog.Songs)
		assert.Empty(t, catalog.Artists)
		assert.Empty(t, catalog.Letters)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "missing title", source: "@artist=Someone\n\nbody"},
		{name: "missing artist", source: "@title=Song\n\nbody"},
		{name: "malformed header", source: "@title\n@artist=Someone\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			assert.ErrorIs(t, err, types.ErrParseFailed)
		})
	}
}

func TestParseMultipleArtists(t *testing.T) {
	source := "@title=One\n@artist=Abba\n\nbody one\n---\n@title=Two\n@artist=Beatles\n\nbody two\n---\n@title=Three\n@artist=Abba\n\nbody three"
	catalog, err := Parse(source)
	require.NoError(t, err)

	require.Len(t, catalog.Songs, 3)
	require.Len(t, catalog.Artists, 2)
	assert.Equal(t, catalog.Songs[0].ArtistID, catalog.Songs[2].ArtistID)

	require.Len(t, catalog.Letters, 2)
	assert.Equal(t, "A", catalog.Letters[0].Letter)
	assert.Equal(t, "B", catalog.Letters[1].Letter)
	assert.Equal(t, 1, catalog.Letters[0].ArtistCount)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "some-artist", slug("Some Artist"))
	assert.Equal(t, "zlutoucky-kun", slug("Žluťoučký kůň!"))
	assert.Equal(t, "ac-dc", slug("AC/DC"))
}

func TestFirstLetter(t *testing.T) {
	assert.Equal(t, "S", firstLetter("Some artist"))
	assert.Equal(t, "Z", firstLetter("Žluťoučký"))
	assert.Equal(t, "#", firstLetter("4 Non Blondes"))
	assert.Equal(t, "#", firstLetter(""))
}
