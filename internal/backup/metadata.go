package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"worldvault/internal/world"
)

// MetadataFile is the per-world metadata record written into each staged
// world folder. Restore tooling keys off this name.
const MetadataFile = "mc_backup_metadata.json"

// Metadata describes one backed-up world inside the archive.
type Metadata struct {
	Name         string `json:"name"`
	Platform     string `json:"platform"`
	OriginalPath string `json:"original_path"`
	BackupDate   string `json:"backup_date"`
}

// writeMetadata writes the metadata record into the staged world copy.
func writeMetadata(dir string, w world.World, now time.Time) error {
	meta := Metadata{
		Name:         w.Name,
		Platform:     w.Platform,
		OriginalPath: w.Path,
		BackupDate:   now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MetadataFile), data, 0644)
}
