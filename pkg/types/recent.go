package types

import "time"

// RecentKind discriminates recent-entry payloads.
type RecentKind string

// Recent entry kinds.
const (
	RecentSong   RecentKind = "song"
	RecentArtist RecentKind = "artist"
)

// RecentEntry records a viewed song or artist. ID is namespaced by kind
// ("song:<id>" or "artist:<name>"). The embedded Song or Artist is a
// denormalized snapshot taken at view time, so the entry stays viewable
// after its source catalog is removed.
type RecentEntry struct {
	ID       string     `json:"id"`
	Kind     RecentKind `json:"kind"`
	ViewedAt time.Time  `json:"viewedAt"`
	Song     *Song      `json:"song,omitempty"`
	Artist   *Artist    `json:"artist,omitempty"`
}
