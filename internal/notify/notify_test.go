package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeInbox(t *testing.T, dataPath, name, body string) string {
	t.Helper()
	dir := filepath.Join(dataPath, "inbox")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDropWatcherReceivesFile(t *testing.T) {
	dir := t.TempDir()

	received := make(chan string, 1)
	watcher := NewDropWatcher(dir, func(ctx context.Context, path string) error {
		received <- filepath.Base(path)
		return nil
	})
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	// Give fsnotify a moment to register
	time.Sleep(50 * time.Millisecond)

	writeInbox(t, dir, "dropped.md", "A dropped note.")

	select {
	case name := <-received:
		if name != "dropped.md" {
			t.Errorf("expected dropped.md, got %s", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for import")
	}
}

func TestDropWatcherDrainsExisting(t *testing.T) {
	dir := t.TempDir()

	// Files dropped BEFORE the watcher starts
	writeInbox(t, dir, "one.md", "First note.")
	writeInbox(t, dir, "two.markdown", "Second note.")
	writeInbox(t, dir, "ignored.txt", "Not markdown.")

	received := make(chan string, 10)
	watcher := NewDropWatcher(dir, func(ctx context.Context, path string) error {
		received <- filepath.Base(path)
		return nil
	})
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	// Drain runs synchronously during Start
	time.Sleep(100 * time.Millisecond)

	if len(received) != 2 {
		t.Fatalf("expected 2 drained files, got %d", len(received))
	}
}

func TestDropWatcherRemovesImportedFile(t *testing.T) {
	dir := t.TempDir()

	done := make(chan struct{}, 1)
	watcher := NewDropWatcher(dir, func(ctx context.Context, path string) error {
		done <- struct{}{}
		return nil
	})
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	time.Sleep(50 * time.Millisecond)
	path := writeInbox(t, dir, "note.md", "Body text.")

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for import")
	}

	// Removal happens right after the import callback returns.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("imported file still present in inbox")
}

func TestDropWatcherKeepsFileOnImportError(t *testing.T) {
	dir := t.TempDir()

	watcher := NewDropWatcher(dir, func(ctx context.Context, path string) error {
		return os.ErrInvalid
	})

	// Pre-drop so the drain path handles it synchronously.
	path := writeInbox(t, dir, "bad.md", "unparseable")
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should be kept for inspection after a failed import: %v", err)
	}
}
