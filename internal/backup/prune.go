package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// archivePattern matches the archives this tool creates. The embedded
// timestamp sorts lexicographically, so name order is creation order.
const archivePattern = "minecraft_worlds_backup_*.zip"

// Prune removes the oldest backup archives in dir beyond max, returning the
// removed paths. max <= 0 disables pruning.
func Prune(dir string, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, archivePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	if len(matches) <= max {
		return nil, nil
	}

	sort.Strings(matches)

	var removed []string
	for _, path := range matches[:len(matches)-max] {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
