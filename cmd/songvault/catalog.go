// Catalog management commands: add, list, show, remove, enable, disable,
// refresh.
package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/songvault/songvault/internal/fetch"
	"github.com/songvault/songvault/internal/songpro"
	"github.com/songvault/songvault/pkg/types"
)

var (
	flagCatalogID    string
	flagCatalogTitle string
	flagCatalogURL   string
	flagCatalogDesc  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage song catalogs",
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Ingest a catalog from a file or URL",
	Long: `Add ingests a catalog source file into the store. With no file
argument the source is downloaded from --url instead. The catalog id is
generated when --id is not given.

Example:
  songvault catalog add songs.txt --title "My Songbook"
  songvault catalog add --url https://example.org/catalog.txt --title "Cloud Songs"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogAdd,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		databases, err := store.FindDatabases(cmd.Context())
		if err != nil {
			return err
		}
		return printDatabases(databases)
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.GetDatabase(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(db)
		}
		fmt.Printf("ID:          %s\n", db.ID)
		fmt.Printf("Title:       %s\n", db.Title)
		if db.URL != "" {
			fmt.Printf("URL:         %s\n", db.URL)
		}
		if db.Description != "" {
			fmt.Printf("Description: %s\n", db.Description)
		}
		fmt.Printf("Songs:       %s\n", humanize.Comma(int64(db.SongCount)))
		fmt.Printf("Artists:     %s\n", humanize.Comma(int64(db.ArtistCount)))
		fmt.Printf("Active:      %s\n", activeMark(db.IsActive))
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a catalog and all its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DropCatalog(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed catalog %s\n", args[0])
		return nil
	},
}

var catalogEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Include a catalog in browsing and search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.SetActive(cmd.Context(), args[0], true)
	},
}

var catalogDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Exclude a catalog from browsing and search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.SetActive(cmd.Context(), args[0], false)
	},
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-download and re-ingest every catalog from its source URL",
	Long: `Refresh downloads every catalog from its recorded source URL and
rebuilds the whole store in one transaction. Either all catalogs are
replaced or none are; a single failed download aborts the refresh and
leaves the store untouched.`,
	RunE: runCatalogRefresh,
}

func init() {
	catalogAddCmd.Flags().StringVar(&flagCatalogID, "id", "", "catalog id (generated when empty)")
	catalogAddCmd.Flags().StringVar(&flagCatalogTitle, "title", "", "catalog title")
	catalogAddCmd.Flags().StringVar(&flagCatalogURL, "url", "", "source URL, recorded for refresh")
	catalogAddCmd.Flags().StringVar(&flagCatalogDesc, "description", "", "catalog description")

	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	catalogCmd.AddCommand(catalogEnableCmd)
	catalogCmd.AddCommand(catalogDisableCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var source string
	switch {
	case len(args) == 1:
		var err error
		if source, err = readSourceFile(args[0]); err != nil {
			return err
		}
	case flagCatalogURL != "":
		client := fetch.NewClient(fetchTimeout())
		var err error
		if source, err = client.Fetch(ctx, flagCatalogURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either a source file or --url is required")
	}

	parsed, err := songpro.Parse(source)
	if err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	meta := types.DatabaseMeta{
		ID:          flagCatalogID,
		Title:       flagCatalogTitle,
		URL:         flagCatalogURL,
		Description: flagCatalogDesc,
		Size:        humanize.Bytes(uint64(len(source))),
	}
	id, err := store.IngestCatalog(ctx, meta, parsed)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested catalog %s: %d songs, %d artists\n", id, len(parsed.Songs), len(parsed.Artists))
	return nil
}

func runCatalogRefresh(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	databases, err := store.FindDatabases(ctx)
	if err != nil {
		return err
	}
	if len(databases) == 0 {
		fmt.Println("No catalogs to refresh")
		return nil
	}

	bar := progressbar.NewOptions(len(databases),
		progressbar.OptionSetDescription("refreshing catalogs"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	client := fetch.NewClient(fetchTimeout())
	err = store.ReingestAll(ctx, client, songpro.Parse, func(done, total int) {
		_ = bar.Set(done)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Refreshed %d catalogs\n", len(databases))
	return nil
}

func fetchTimeout() time.Duration {
	seconds := configFetchTimeout
	if seconds <= 0 {
		seconds = defaultFetchTimeout
	}
	return time.Duration(seconds) * time.Second
}
