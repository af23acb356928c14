package types

// SearchResult is the outcome of one catalog search. Artists are sorted by
// name; Songs lists title matches before body matches, each block sorted
// by title. SearchDone is false only when the query yielded no tokens,
// which distinguishes "no query" from "query matched nothing".
type SearchResult struct {
	Artists    []*Artist `json:"artists"`
	Songs      []*Song   `json:"songs"`
	SearchDone bool      `json:"searchDone"`
}
