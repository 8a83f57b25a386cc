// Package world discovers Minecraft save-game folders across platforms.
// Each platform (Java, Bedrock) has a Provider that knows where that
// edition keeps its saves and how to recognize a valid world folder.
package world

import (
	"context"
	"os"
	"path/filepath"
)

// World is a single Minecraft save-game folder.
type World struct {
	// Absolute path to the world folder
	Path string

	// Display name (folder name, or the in-game name when the platform
	// stores one)
	Name string

	// Source platform: "Java" or "Bedrock"
	Platform string

	// Path to the world's icon image, empty when none exists
	Icon string
}

// Provider discovers worlds for one platform.
type Provider interface {
	// Platform returns the platform name this provider handles.
	Platform() string

	// Available reports whether the platform is relevant on this system.
	Available() bool

	// Locations returns the saves directories this provider scans.
	// Missing directories are included; callers that watch the filesystem
	// filter for existing ones.
	Locations() []string

	// Worlds returns all worlds found across the provider's locations.
	Worlds(ctx context.Context) ([]World, error)
}

// scanLocations walks each location's immediate children and keeps the
// directories containing the marker file. meta turns a matching folder into
// a World.
func scanLocations(ctx context.Context, locations []string, marker string, meta func(path, folder string) World) ([]World, error) {
	var worlds []World

	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(location)
		if err != nil {
			// Missing or unreadable locations are expected; the caller
			// logs them.
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(location, entry.Name())
			if _, err := os.Stat(filepath.Join(path, marker)); err != nil {
				continue
			}
			worlds = append(worlds, meta(path, entry.Name()))
		}
	}

	return worlds, nil
}

// dedupe removes duplicate locations preserving order.
func dedupe(locations []string) []string {
	seen := make(map[string]struct{}, len(locations))
	unique := make([]string, 0, len(locations))
	for _, loc := range locations {
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		unique = append(unique, loc)
	}
	return unique
}

// existingIcon returns path when the file exists, otherwise empty.
func existingIcon(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
