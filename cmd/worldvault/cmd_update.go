// This file implements the release update check.
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldvault/internal/update"
)

// updateCmd checks GitHub for a newer release
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer worldvault release",
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	fmt.Println("Checking for updates...")

	checker := update.NewChecker("")
	rel, err := checker.Latest(cmd.Context())
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	cfg.Updates.LastCheck = time.Now().Format(time.RFC3339)
	if err := cfg.Save(cfgPath); err != nil {
		logger.Warn("cannot persist last update check", zap.Error(err))
	}

	if !update.IsNewer(Version, rel.TagName) {
		fmt.Printf("You are running the latest version (%s).\n", Version)
		return nil
	}

	fmt.Printf("Version %s is available (you have %s).\n\n", rel.TagName, Version)
	if rel.Body != "" {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			if out, err := renderer.Render(rel.Body); err == nil {
				fmt.Print(out)
			} else {
				fmt.Println(rel.Body)
			}
		} else {
			fmt.Println(rel.Body)
		}
	}
	fmt.Printf("\nDownload: %s\n", rel.HTMLURL)
	return nil
}
