// Search command over the active catalog set.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search artists, song titles, and lyrics",
	Long: `Search matches every query word as a prefix against artist names
first, then song titles, then lyric bodies, stopping once the shared
result budget is filled. Only active catalogs are searched.

Example:
  songvault search yellow submarine`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := store.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(result)
		}

		if len(result.Artists) == 0 && len(result.Songs) == 0 {
			fmt.Println("No matches")
			return nil
		}
		if len(result.Artists) > 0 {
			fmt.Printf("Artists (%d):\n", len(result.Artists))
			if err := printArtists(result.Artists); err != nil {
				return err
			}
		}
		if len(result.Songs) > 0 {
			fmt.Printf("Songs (%d):\n", len(result.Songs))
			if err := printSongs(result.Songs); err != nil {
				return err
			}
		}
		if !result.SearchDone {
			fmt.Println("(query too short; type more to search)")
		}
		return nil
	},
}
