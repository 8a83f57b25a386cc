// This file implements the backup history listing.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"worldvault/internal/history"
)

var historyLimit int

// historyCmd lists recent backups
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent backups",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No backups recorded yet.")
		return nil
	}

	fmt.Println("Recent backups")
	fmt.Println(strings.Repeat("─", 72))
	for _, rec := range records {
		fmt.Printf("  %s  %2d world(s)  %8s  %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Worlds,
			formatSize(rec.SizeBytes),
			rec.Archive)
	}
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("Total: %d backup(s)\n", len(records))

	if days := cfg.Backups.AutoBackupIntervalDays; days > 0 {
		stale := time.Duration(days) * 24 * time.Hour
		if last := records[0]; time.Since(last.CreatedAt) > stale {
			fmt.Printf("\nYour last backup is over %d days old.\n", days)
		}
	}
	return nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
