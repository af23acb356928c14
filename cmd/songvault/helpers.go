// Shared output helpers for songvault CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/songvault/songvault/pkg/types"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a tabwriter targeting stdout. Callers must Flush.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printDatabases(databases []*types.Database) error {
	if flagJSON {
		return printJSON(databases)
	}
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tSONGS\tARTISTS\tSIZE\tACTIVE")
	for _, db := range databases {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			db.ID, db.Title,
			humanize.Comma(int64(db.SongCount)),
			humanize.Comma(int64(db.ArtistCount)),
			db.Size, activeMark(db.IsActive))
	}
	return w.Flush()
}

func printArtists(artists []*types.Artist) error {
	if flagJSON {
		return printJSON(artists)
	}
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tNAME\tCATALOG")
	for _, artist := range artists {
		fmt.Fprintf(w, "%s\t%s\t%s\n", artist.ID, artist.Name, artist.DatabaseTitle)
	}
	return w.Flush()
}

func printSongs(songs []*types.Song) error {
	if flagJSON {
		return printJSON(songs)
	}
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tCATALOG")
	for _, song := range songs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", song.ID, song.Title, song.ArtistName, song.DatabaseTitle)
	}
	return w.Flush()
}

func printDrafts(drafts []*types.FileDatabase) error {
	if flagJSON {
		return printJSON(drafts)
	}
	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tSONGS\tARTISTS")
	for _, draft := range drafts {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", draft.ID, draft.Title, draft.SongCount, draft.ArtistCount)
	}
	return w.Flush()
}

func activeMark(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}

// parseDraftID parses a draft id argument.
func parseDraftID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft id %q: %w", arg, types.ErrInvalidID)
	}
	return id, nil
}

// readSourceFile reads a catalog source file.
func readSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}
	return string(data), nil
}
