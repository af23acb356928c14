// Draft catalog commands: locally edited catalogs staged alongside the
// ingested ones.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songvault/songvault/internal/songpro"
)

var flagDraftSongs []string

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage draft catalogs",
	Long: `Draft catalogs are raw-text catalogs edited locally. A draft is
created with a two-song example source, edited by saving new source
text, and promoted into the searchable store under its own catalog id.
Song-level edits (append, replace, remove-songs) require a promoted
draft, since they rebuild the source from the promoted songs.`,
}

var draftCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a draft catalog seeded with an example source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.CreateDraft(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created draft %d\n", id)
		return nil
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List draft catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, err := store.FindDrafts(cmd.Context())
		if err != nil {
			return err
		}
		return printDrafts(drafts)
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a draft's source text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		content, err := store.GetDraftContent(cmd.Context(), id)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(content)
		}
		fmt.Println(content.Data)
		return nil
	},
}

var draftSaveCmd = &cobra.Command{
	Use:   "save <id> <file>",
	Short: "Replace a draft's source with a file's contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		source, err := readSourceFile(args[1])
		if err != nil {
			return err
		}
		return store.SaveDraft(cmd.Context(), id, source, songpro.Parse)
	},
}

var draftAppendCmd = &cobra.Command{
	Use:   "append <id> <file>",
	Short: "Append songs from a file to a promoted draft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		source, err := readSourceFile(args[1])
		if err != nil {
			return err
		}
		return store.AppendSongs(cmd.Context(), id, source, songpro.Parse)
	},
}

var draftReplaceCmd = &cobra.Command{
	Use:   "replace <id> <file>",
	Short: "Replace songs in a promoted draft with a file's contents",
	Long: `Replace removes the songs given with --song from the promoted
draft and appends the file's songs in their place. The draft source is
rebuilt from the kept songs plus the replacement and re-promoted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		source, err := readSourceFile(args[1])
		if err != nil {
			return err
		}
		return store.ReplaceSongs(cmd.Context(), id, flagDraftSongs, source, songpro.Parse)
	},
}

var draftRemoveSongsCmd = &cobra.Command{
	Use:   "remove-songs <id> <song-id>...",
	Short: "Remove songs from a promoted draft",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		return store.RemoveSongs(cmd.Context(), id, args[1:], songpro.Parse)
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a draft catalog",
	Long: `Delete removes the draft shell and its source text. A promoted
copy in the store is kept; remove it with "catalog remove".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteDraft(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted draft %d\n", id)
		return nil
	},
}

var draftPromoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "Ingest a draft into the searchable store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		if err := store.PromoteDraft(cmd.Context(), id, songpro.Parse); err != nil {
			return err
		}
		fmt.Printf("Promoted draft %d\n", id)
		return nil
	},
}

func init() {
	draftReplaceCmd.Flags().StringSliceVar(&flagDraftSongs, "song", nil, "song id to replace (repeatable)")

	draftCmd.AddCommand(draftCreateCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSaveCmd)
	draftCmd.AddCommand(draftAppendCmd)
	draftCmd.AddCommand(draftReplaceCmd)
	draftCmd.AddCommand(draftRemoveSongsCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	draftCmd.AddCommand(draftPromoteCmd)
}
