package types

import "time"

// FileDatabase is a draft catalog shell: a locally edited raw-text catalog
// staged separately from ingested cloud catalogs. Counts mirror the last
// saved parse and are kept for display even while content is replaced.
type FileDatabase struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	SongCount   int    `json:"songCount"`
	ArtistCount int    `json:"artistCount"`
}

// FileDatabaseContent is the raw source blob of a draft catalog. At most
// one active content row exists per draft at a time; saves delete prior
// rows before inserting a new one, never update in place.
type FileDatabaseContent struct {
	ID         int64     `json:"id"`
	DatabaseID int64     `json:"databaseId"`
	Data       string    `json:"data"`
	IsActive   bool      `json:"isActive"`
	SavedAt    time.Time `json:"savedAt"`
}
