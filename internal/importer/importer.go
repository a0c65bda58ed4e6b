package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Classifier is the async classification sink for imported entries.
type Classifier interface {
	Enqueue(userID string, source types.SourceKind, sourceID, text string) bool
}

// Report summarizes one import run.
type Report struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Importer persists parsed Markdown files as journal entries and feeds
// them to the classifier.
type Importer struct {
	store      storage.Store
	classifier Classifier
}

// New creates an importer. classifier may be nil, in which case imported
// entries are stored without mood analysis.
func New(store storage.Store, classifier Classifier) *Importer {
	return &Importer{store: store, classifier: classifier}
}

// ImportFile imports a single Markdown file as one journal entry.
func (i *Importer) ImportFile(ctx context.Context, userID, path string) (*types.JournalEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	parsed, err := ParseMarkdownFile(content, path)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	createdAt := parsed.WrittenAt
	if createdAt.IsZero() {
		createdAt = now
	}
	entry := &types.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     parsed.Title,
		Content:   parsed.Content,
		MoodTag:   parsed.MoodTag,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := i.store.CreateJournalEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}

	if i.classifier != nil {
		if !i.classifier.Enqueue(userID, types.SourceJournal, entry.ID, entry.Content) {
			log.Printf("import: classification queue rejected entry %s", entry.ID)
		}
	}
	return entry, nil
}

// ImportDirectory walks root recursively and imports every .md file.
// Files that fail to parse are skipped and reported, not fatal.
func (i *Importer) ImportDirectory(ctx context.Context, userID, root string) (*Report, error) {
	report := &Report{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Skip hidden directories like .obsidian or .git.
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}

		if _, err := i.ImportFile(ctx, userID, path); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, err.Error())
			return nil
		}
		report.Imported++
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("walk %s: %w", root, err)
	}

	log.Printf("import: %d entries imported, %d skipped from %s", report.Imported, report.Skipped, root)
	return report, nil
}
