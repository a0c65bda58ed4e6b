package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSnapshot(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("snapshot"), 0o600); err != nil {
		t.Fatal(err)
	}
	mod := time.Now().Add(-age)
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()

	oldest := writeSnapshot(t, dir, "solace-a.db", 3*time.Hour)
	middle := writeSnapshot(t, dir, "solace-b.db", 2*time.Hour)
	newest := writeSnapshot(t, dir, "solace-c.db", 1*time.Hour)
	kept := writeSnapshot(t, dir, "notes.txt", 10*time.Hour) // not a snapshot

	if err := prune(dir, 2); err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Error("oldest snapshot should have been removed")
	}
	for _, path := range []string{middle, newest, kept} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s should have been kept: %v", filepath.Base(path), err)
		}
	}
}

func TestPruneUnderLimitIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "solace-only.db", time.Hour)

	if err := prune(dir, 14); err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot should survive prune under the limit: %v", err)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "solace-old.db", 2*time.Hour)
	newest := writeSnapshot(t, dir, "solace-new.db", time.Minute)

	snapshots, err := listSnapshots(dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].path != newest {
		t.Errorf("expected newest first, got %s", snapshots[0].path)
	}
}

func TestNewServiceDefaults(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(Config{DBPath: filepath.Join(dir, "solace.db")})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if svc.interval != 6*time.Hour {
		t.Errorf("interval = %v, want 6h default", svc.interval)
	}
	if svc.keep != 14 {
		t.Errorf("keep = %d, want 14 default", svc.keep)
	}
	if _, err := os.Stat(filepath.Join(dir, "backups")); err != nil {
		t.Errorf("backup directory should be created: %v", err)
	}
}

func TestNewServiceRequiresDBPath(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected error for missing database path")
	}
}
