package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"versequest/internal/app"
	"versequest/internal/config"
	"versequest/internal/content"
	"versequest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "versequest",
	Short: "Scripture memory trainer for the terminal",
	Long:  "VerseQuest — a terminal app that builds lasting scripture memory through daily quizzes and spaced review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VERSEQUEST_DB env var)")
	rootCmd.PersistentFlags().String("corpus", "", "Path to a corpus JSON file (overrides the embedded corpus)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration: file/env settings with
// flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("corpus"); p != "" {
		cfg.CorpusPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path from config (flag/env), or
// the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// loadCorpus returns the configured corpus file, or the embedded one.
func loadCorpus(cfg *config.Config) (*content.Corpus, error) {
	if cfg.CorpusPath != "" {
		return content.Load(cfg.CorpusPath)
	}
	return content.LoadDefault()
}

// runApp opens the store, loads the corpus, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	corpus, err := loadCorpus(cfg)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Config:       cfg,
		Corpus:       corpus,
		SnapshotRepo: st.SnapshotRepo(),
		EventRepo:    st.EventRepo(),
	})
}
