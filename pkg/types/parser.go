package types

import "context"

// ParsedSong is one song record produced by a catalog parser. IDs are
// local to the parsed catalog; ingestion prefixes them with the catalog id.
// Text is the lyric body used to build the body token index; Source is the
// verbatim source fragment the song was parsed from, kept so draft edits
// can reconstruct the full catalog source.
type ParsedSong struct {
	ID         string
	ArtistID   string
	Title      string
	ArtistName string
	Text       string
	Source     string
}

// ParsedArtist is one artist record produced by a catalog parser.
type ParsedArtist struct {
	ID     string
	Name   string
	Letter string
}

// ParsedLetter is one first-letter group produced by a catalog parser.
type ParsedLetter struct {
	Letter      string
	ArtistCount int
}

// ParsedCatalog is the parser output consumed by ingestion: ordered song,
// artist, and letter-group records.
type ParsedCatalog struct {
	Songs   []ParsedSong
	Artists []ParsedArtist
	Letters []ParsedLetter
}

// Parser turns raw catalog source text into a ParsedCatalog. Implemented
// by collaborators; the store treats it as opaque.
type Parser func(source string) (*ParsedCatalog, error)

// Fetcher retrieves the raw text of a remote catalog. Implemented by
// collaborators; used when re-ingesting all catalogs from their sources.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
