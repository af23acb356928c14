// Package songpro parses the plain-text song catalog format: songs are
// separated by "---" lines, each song starts with "@key=value" header
// lines (title, artist) followed by the lyric body with inline chord
// annotations.
package songpro

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/songvault/songvault/internal/tokenizer"
	"github.com/songvault/songvault/pkg/types"
)

// Parse converts catalog source text into song, artist, and letter-group
// records. Artists are derived from distinct artist names in order of
// first appearance; letter groups count artists by first letter. Parse
// satisfies types.Parser.
func Parse(source string) (*types.ParsedCatalog, error) {
	// An empty source is a valid empty catalog, not a parse failure;
	// removing every song from a draft produces one.
	fragments := splitSongs(source)

	catalog := &types.ParsedCatalog{}
	artistIDs := make(map[string]string)   // name -> artist id
	letterCounts := make(map[string]int)   // letter -> artist count
	var letterOrder []string

	for i, fragment := range fragments {
		song, err := parseSong(fragment)
		if err != nil {
			return nil, fmt.Errorf("%w: song %d: %v", types.ErrParseFailed, i+1, err)
		}

		artistID, ok := artistIDs[song.ArtistName]
		if !ok {
			artistID = slug(song.ArtistName)
			artistIDs[song.ArtistName] = artistID

			letter := firstLetter(song.ArtistName)
			if _, seen := letterCounts[letter]; !seen {
				letterOrder = append(letterOrder, letter)
			}
			letterCounts[letter]++

			catalog.Artists = append(catalog.Artists, types.ParsedArtist{
				ID:     artistID,
				Name:   song.ArtistName,
				Letter: letter,
			})
		}
		song.ArtistID = artistID
		song.ID = artistID + "-" + slug(song.Title)

		catalog.Songs = append(catalog.Songs, song)
	}

	for _, letter := range letterOrder {
		catalog.Letters = append(catalog.Letters, types.ParsedLetter{
			Letter:      letter,
			ArtistCount: letterCounts[letter],
		})
	}

	return catalog, nil
}

// splitSongs splits source on separator lines consisting of dashes only.
func splitSongs(source string) []string {
	var fragments []string
	var current []string

	flush := func() {
		fragment := strings.TrimSpace(strings.Join(current, "\n"))
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 3 && strings.Trim(trimmed, "-") == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return fragments
}

// parseSong parses one song fragment: "@key=value" headers then the body.
func parseSong(fragment string) (types.ParsedSong, error) {
	song := types.ParsedSong{Source: fragment}

	var bodyLines []string
	inBody := false
	for _, line := range strings.Split(fragment, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBody && strings.HasPrefix(trimmed, "@") {
			key, value, found := strings.Cut(trimmed[1:], "=")
			if !found {
				return song, fmt.Errorf("malformed header %q", trimmed)
			}
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "title":
				song.Title = strings.TrimSpace(value)
			case "artist":
				song.ArtistName = strings.TrimSpace(value)
			}
			continue
		}
		inBody = true
		bodyLines = append(bodyLines, line)
	}

	if song.Title == "" {
		return song, fmt.Errorf("missing @title header")
	}
	if song.ArtistName == "" {
		return song, fmt.Errorf("missing @artist header")
	}

	song.Text = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return song, nil
}

// slug builds a stable local identifier from a display name.
func slug(s string) string {
	s = strings.ToLower(tokenizer.RemoveDiacritics(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// firstLetter returns the uppercased first letter of a name with
// diacritics stripped, or "#" when the name does not start with a letter.
func firstLetter(name string) string {
	stripped := tokenizer.RemoveDiacritics(strings.TrimSpace(name))
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
		break
	}
	return "#"
}
