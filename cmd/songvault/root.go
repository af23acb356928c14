// Root command for the songvault CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songvault/songvault/internal/paths"
	"github.com/songvault/songvault/internal/sqlite"
	"github.com/songvault/songvault/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE.
var (
	configDataDir      string
	configFetchTimeout int
)

// store is the shared store instance, opened on startup and closed after
// the command runs.
var store = sqlite.New()

var rootCmd = &cobra.Command{
	Use:   "songvault",
	Short: "Songvault is a local song catalog store",
	Long: `Songvault stores song catalogs locally and serves browsing and
full-text search over artists, song titles, and lyric bodies without a
network connection. Catalogs are ingested from files or URLs; drafts are
locally edited catalogs staged alongside the ingested ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configFetchTimeout = cfg.GetInt(cfgKeyFetchTimeout)

		dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		if err := store.Open(types.Config{DataDir: dataDir}); err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return store.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.songvault-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(artistsCmd)
	rootCmd.AddCommand(lettersCmd)
	rootCmd.AddCommand(songsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recentsCmd)
	rootCmd.AddCommand(draftCmd)
}
