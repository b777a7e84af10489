package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"versequest/internal/srs"
	"versequest/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List verses due for review",
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

		var snapData *store.SnapshotData
		snap, err := st.SnapshotRepo().Latest(context.Background())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			snapData = &snap.Data
		}

		sched := srs.NewScheduler(snapData)
		now := time.Now()
		due := sched.Due(now)
		if len(due) == 0 {
			fmt.Println("No verses due for review.")
			return nil
		}

		fmt.Printf("%d verse(s) due:\n", len(due))
		for _, ref := range due {
			rec := sched.Record(ref)
			fmt.Printf("  %-22s level %d, overdue %.0f day(s)\n", ref, rec.Level, rec.OverdueDays(now))
		}
		fmt.Println("\nRun `versequest` and pick REVIEW DUE VERSES to practice them.")
		return nil
	},
}
