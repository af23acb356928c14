// Browsing commands over the active catalog set: artists, letters,
// songs, show.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagBrowseCatalog string
	flagBrowseLetter  string
	flagBrowseArtist  string
	flagBrowseOffset  int
	flagBrowseLimit   int
)

var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "List artists",
	Long: `Artists lists artists across the active catalog set, sorted by
name. With --letter only artists whose names start with that letter are
listed; with --catalog the listing is scoped to one catalog regardless
of its active flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if flagBrowseLetter != "" {
			artists, err := store.FindArtistsByLetter(ctx, flagBrowseLetter, flagBrowseCatalog)
			if err != nil {
				return err
			}
			return printArtists(artists)
		}
		artists, err := store.FindArtists(ctx, flagBrowseCatalog)
		if err != nil {
			return err
		}
		return printArtists(artists)
	},
}

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "List letter groups with artist counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		letters, err := store.FindActiveLetters(cmd.Context(), flagBrowseCatalog)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(letters)
		}
		w := newTabWriter()
		fmt.Fprintln(w, "LETTER\tARTISTS")
		for _, letter := range letters {
			fmt.Fprintf(w, "%s\t%d\n", letter.Letter, letter.ArtistCount)
		}
		return w.Flush()
	},
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List songs",
	Long: `Songs lists songs by artist or pages through a catalog. With
--artist the artist's songs are listed; otherwise --offset and --limit
page over the active catalog set (or one catalog with --catalog).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if flagBrowseArtist != "" {
			songs, err := store.FindSongsByArtist(ctx, flagBrowseArtist)
			if err != nil {
				return err
			}
			return printSongs(songs)
		}
		songs, err := store.FindSongsByRange(ctx, flagBrowseOffset, flagBrowseLimit, flagBrowseCatalog)
		if err != nil {
			return err
		}
		return printSongs(songs)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <song-id>",
	Short: "Show a song's full source and record the view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		song, err := store.GetSong(ctx, args[0])
		if err != nil {
			return err
		}
		if err := store.AddRecentSong(ctx, song); err != nil {
			return err
		}
		if flagJSON {
			return printJSON(song)
		}
		fmt.Printf("%s - %s (%s)\n\n", song.ArtistName, song.Title, song.DatabaseTitle)
		fmt.Println(song.Source)
		return nil
	},
}

func init() {
	artistsCmd.Flags().StringVar(&flagBrowseCatalog, "catalog", "", "scope to one catalog id")
	artistsCmd.Flags().StringVar(&flagBrowseLetter, "letter", "", "only artists starting with this letter")
	lettersCmd.Flags().StringVar(&flagBrowseCatalog, "catalog", "", "scope to one catalog id")
	songsCmd.Flags().StringVar(&flagBrowseCatalog, "catalog", "", "scope to one catalog id")
	songsCmd.Flags().StringVar(&flagBrowseArtist, "artist", "", "list one artist's songs")
	songsCmd.Flags().IntVar(&flagBrowseOffset, "offset", 0, "paging offset")
	songsCmd.Flags().IntVar(&flagBrowseLimit, "limit", 50, "paging limit")
}
