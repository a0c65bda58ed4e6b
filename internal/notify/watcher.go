// Package notify watches a drop directory for Markdown files and feeds
// them to the journal importer, so notes saved from another app become
// journal entries without touching the API.
package notify

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ImportFunc consumes one dropped file. The file is removed after a
// successful import.
type ImportFunc func(ctx context.Context, path string) error

// DropWatcher watches {dataPath}/inbox/ for Markdown files.
type DropWatcher struct {
	dir      string
	importFn ImportFunc
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewDropWatcher creates a watcher for {dataPath}/inbox/.
func NewDropWatcher(dataPath string, importFn ImportFunc) *DropWatcher {
	return &DropWatcher{
		dir:      filepath.Join(dataPath, "inbox"),
		importFn: importFn,
		done:     make(chan struct{}),
	}
}

// Dir returns the watched directory.
func (dw *DropWatcher) Dir() string {
	return dw.dir
}

// Start begins watching. Files already sitting in the inbox are drained
// first, then new ones are picked up as they appear. Call Stop() to
// clean up.
func (dw *DropWatcher) Start() error {
	if err := os.MkdirAll(dw.dir, 0o700); err != nil {
		return err
	}

	dw.drainExisting()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dw.dir); err != nil {
		_ = w.Close()
		return err
	}
	dw.watcher = w

	go dw.loop()
	log.Printf("notify: watching %s for dropped journal files", dw.dir)
	return nil
}

// Stop shuts down the watcher.
func (dw *DropWatcher) Stop() {
	if dw.watcher != nil {
		_ = dw.watcher.Close()
	}
	<-dw.done
}

func (dw *DropWatcher) loop() {
	defer close(dw.done)
	for {
		select {
		case evt, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Create|fsnotify.Rename) != 0 && isMarkdown(evt.Name) {
				// Editors often create then write; give the writer a
				// moment to finish before reading.
				time.Sleep(100 * time.Millisecond)
				dw.processFile(evt.Name)
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("notify: watcher error: %v", err)
		}
	}
}

func (dw *DropWatcher) drainExisting() {
	entries, err := os.ReadDir(dw.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && isMarkdown(entry.Name()) {
			dw.processFile(filepath.Join(dw.dir, entry.Name()))
		}
	}
}

func (dw *DropWatcher) processFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return // file already consumed
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := dw.importFn(ctx, path); err != nil {
		log.Printf("notify: import of %s failed: %v", filepath.Base(path), err)
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("notify: could not remove imported file %s: %v", filepath.Base(path), err)
	}
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}
