package world

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// bedrockMarker identifies a valid Bedrock Edition world folder.
const bedrockMarker = "levelname.txt"

// BedrockProvider discovers Minecraft Bedrock Edition worlds. Bedrock keeps
// the in-game world name in levelname.txt, so discovered worlds carry that
// name instead of the (random-looking) folder name.
type BedrockProvider struct {
	custom []string
	log    *zap.Logger
}

// NewBedrockProvider creates a Bedrock world provider.
func NewBedrockProvider(custom []string, log *zap.Logger) *BedrockProvider {
	return &BedrockProvider{custom: custom, log: log}
}

// Platform returns the platform name.
func (p *BedrockProvider) Platform() string { return "Bedrock" }

// Available reports whether a Bedrock install can exist on this system.
func (p *BedrockProvider) Available() bool {
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		return true
	}
	return false
}

// Locations returns the minecraftWorlds directories to scan.
func (p *BedrockProvider) Locations() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	var locations []string

	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			locations = append(locations, filepath.Join(local,
				"Packages", "Microsoft.MinecraftUWP_8wekyb3d8bbwe",
				"LocalState", "games", "com.mojang", "minecraftWorlds"))
		}
	case "darwin":
		locations = append(locations, filepath.Join(home,
			"Library", "Application Support", "com.mojang.minecraftpe",
			"games", "com.mojang", "minecraftWorlds"))
	default:
		// mcpelauncher, the unofficial Linux Bedrock launcher
		locations = append(locations, filepath.Join(home,
			".local", "share", "mcpelauncher", "games", "com.mojang", "minecraftWorlds"))
	}

	locations = append(locations, p.custom...)
	return dedupe(locations)
}

// Worlds scans all locations for folders containing levelname.txt.
func (p *BedrockProvider) Worlds(ctx context.Context) ([]World, error) {
	locations := p.Locations()
	p.log.Debug("scanning for Bedrock worlds", zap.Int("locations", len(locations)))

	worlds, err := scanLocations(ctx, locations, bedrockMarker, func(path, folder string) World {
		return World{
			Path:     path,
			Name:     bedrockWorldName(path, folder),
			Platform: p.Platform(),
			Icon:     existingIcon(filepath.Join(path, "world_icon.jpeg")),
		}
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("Bedrock scan complete", zap.Int("worlds", len(worlds)))
	return worlds, nil
}

// bedrockWorldName reads the display name from levelname.txt, falling back
// to the folder name.
func bedrockWorldName(path, folder string) string {
	data, err := os.ReadFile(filepath.Join(path, bedrockMarker))
	if err != nil {
		return folder
	}
	if name := strings.TrimSpace(string(data)); name != "" {
		return name
	}
	return folder
}
