package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"versequest/internal/progress"
	"versequest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memorization statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
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

		ctx := context.Background()
		stats, err := st.EventRepo().Stats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Printf("Sessions completed: %d\n", stats.TotalSessions)
		fmt.Printf("Questions answered: %d\n", stats.TotalQuestions)
		fmt.Printf("Correct answers:    %d\n", stats.TotalCorrect)
		fmt.Printf("Points earned:      %d\n", stats.TotalReward)
		if !stats.LastSessionAt.IsZero() {
			fmt.Printf("Last session:       %s\n", stats.LastSessionAt.Format("2006-01-02 15:04"))
		}

		snap, err := st.SnapshotRepo().Latest(ctx)
		if err == nil && snap != nil && snap.Data.Progress != nil {
			prog := progress.RecordFromSnapshot(snap.Data.Progress)
			fmt.Printf("Current streak:     %d day(s)\n", prog.CurrentStreak)
			fmt.Printf("Longest streak:     %d day(s)\n", prog.LongestStreak)
		}
		return nil
	},
}
