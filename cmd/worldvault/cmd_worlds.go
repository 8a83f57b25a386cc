// This file implements world discovery listing.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"worldvault/internal/world"
)

// worldsCmd lists every discovered world
var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List discovered Minecraft worlds",
	RunE:  runWorlds,
}

func runWorlds(cmd *cobra.Command, args []string) error {
	registry := world.NewRegistry(cfg, logger)
	all, err := registry.AllWorlds(cmd.Context())
	if err != nil {
		return fmt.Errorf("world scan failed: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No Minecraft worlds found.")
		fmt.Println("Add custom save locations with:")
		fmt.Println("  worldvault config set custom_paths.java /path/to/saves")
		return nil
	}

	platforms := make([]string, 0, len(all))
	for platform := range all {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	total := 0
	for _, platform := range platforms {
		worlds := all[platform]
		fmt.Printf("%s (%d)\n", platform, len(worlds))
		fmt.Println(strings.Repeat("─", 50))
		for _, w := range worlds {
			fmt.Printf("  %-30s %s\n", w.Name, w.Path)
		}
		fmt.Println()
		total += len(worlds)
	}
	fmt.Printf("Total: %d world(s)\n", total)
	return nil
}
