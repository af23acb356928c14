// Recents command: recently viewed songs and artists.
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/songvault/songvault/pkg/types"
)

var recentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "List recently viewed songs and artists",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.FindAllRecents(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No recent views")
			return nil
		}
		w := newTabWriter()
		fmt.Fprintln(w, "VIEWED\tKIND\tWHAT")
		for _, entry := range entries {
			var what string
			switch entry.Kind {
			case types.RecentSong:
				what = fmt.Sprintf("%s - %s", entry.Song.ArtistName, entry.Song.Title)
			case types.RecentArtist:
				what = entry.Artist.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(entry.ViewedAt), entry.Kind, what)
		}
		return w.Flush()
	},
}
