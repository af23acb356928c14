package types

// DatabaseMeta describes a catalog source before ingestion: where it came
// from and how it presents itself in a catalog list.
type DatabaseMeta struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Size        string `json:"size"`
}

// Database is an ingested catalog row. Song and artist counts are computed
// at ingestion time; IsActive controls default visibility of the catalog's
// records in listing and search operations.
type Database struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Size        string `json:"size"`
	SongCount   int    `json:"songCount"`
	ArtistCount int    `json:"artistCount"`
	IsActive    bool   `json:"isActive"`
}

// Song is a denormalized song row. ID is "<catalogID>/<localSongID>" and
// ArtistID is "<catalogID>/<localArtistID>"; both are unique across
// catalogs. TitleWords holds the full deduplicated title token set,
// TextWords the first twenty body tokens, deduplicated, which bounds the
// body index size per song. IsActive is a snapshot of the catalog's active
// flag at ingestion time, not a live reference.
type Song struct {
	ID            string   `json:"id"`
	ArtistID      string   `json:"artistId"`
	DatabaseID    string   `json:"databaseId"`
	DatabaseTitle string   `json:"databaseTitle"`
	Source        string   `json:"source"`
	Title         string   `json:"title"`
	ArtistName    string   `json:"artistName"`
	TitleWords    []string `json:"titleWords"`
	TextWords     []string `json:"textWords"`
	IsActive      bool     `json:"isActive"`
}

// Artist is a denormalized artist row. LetterID is
// "<catalogID>/<letter>" and references a Letter ingested in the same
// transaction.
type Artist struct {
	ID            string   `json:"id"`
	DatabaseID    string   `json:"databaseId"`
	DatabaseTitle string   `json:"databaseTitle"`
	Name          string   `json:"name"`
	LetterID      string   `json:"letterId"`
	NameWords     []string `json:"nameWords"`
	IsActive      bool     `json:"isActive"`
}

// Letter is an alphabetic index row: the number of artists in one catalog
// whose names begin with Letter. The count comes from the parsed catalog
// and is not recomputed.
type Letter struct {
	ID          string `json:"id"`
	Letter      string `json:"letter"`
	DatabaseID  string `json:"databaseId"`
	ArtistCount int    `json:"artistCount"`
}

// GroupedLetter aggregates Letter rows across the active catalog set.
type GroupedLetter struct {
	Letter      string `json:"letter"`
	ArtistCount int    `json:"artistCount"`
}
