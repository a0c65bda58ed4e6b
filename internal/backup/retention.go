package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// snapshotInfo is one snapshot file with its modification time used for
// retention ordering.
type snapshotInfo struct {
	path    string
	modTime int64
}

// listSnapshots returns snapshot files in the directory, newest first.
func listSnapshots(dir string) ([]snapshotInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("backup: read directory: %w", err)
	}

	var snapshots []snapshotInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshotInfo{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].modTime > snapshots[j].modTime
	})
	return snapshots, nil
}

// prune removes snapshots beyond the newest keep.
func prune(dir string, keep int) error {
	snapshots, err := listSnapshots(dir)
	if err != nil {
		return err
	}
	for _, old := range snapshots[min(keep, len(snapshots)):] {
		if err := os.Remove(old.path); err != nil {
			return fmt.Errorf("backup: remove %s: %w", filepath.Base(old.path), err)
		}
	}
	return nil
}
