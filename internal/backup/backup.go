// Package backup provides periodic snapshots of the local SQLite
// database with integrity verification and pruning of old snapshots.
// Only the sqlite storage engine uses it; the hosted engines rely on
// their provider's backups.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds backup service configuration.
type Config struct {
	// DBPath is the SQLite database file to snapshot.
	DBPath string

	// BackupDir is where snapshots are written (default: {db dir}/backups).
	BackupDir string

	// Interval between snapshots (default: 6 hours).
	Interval time.Duration

	// Keep is the number of snapshots retained, newest first (default: 14).
	Keep int
}

// Result describes one completed snapshot.
type Result struct {
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Duration time.Duration `json:"duration"`
}

// Service takes snapshots on a timer. Run blocks until the context is
// cancelled; BackupNow can also be called directly.
type Service struct {
	dbPath    string
	backupDir string
	interval  time.Duration
	keep      int

	mu       sync.Mutex
	lastRun  time.Time
	lastPath string
}

// NewService creates a backup service.
func NewService(cfg Config) (*Service, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("backup: database path is required")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(filepath.Dir(cfg.DBPath), "backups")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Keep <= 0 {
		cfg.Keep = 14
	}
	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: create directory: %w", err)
	}
	return &Service{
		dbPath:    cfg.DBPath,
		backupDir: cfg.BackupDir,
		interval:  cfg.Interval,
		keep:      cfg.Keep,
	}, nil
}

// Run performs snapshots on the configured interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("backup: service started, interval=%v, dir=%s", s.interval, s.backupDir)
	for {
		select {
		case <-ctx.Done():
			log.Println("backup: service stopping")
			return
		case <-ticker.C:
			if result, err := s.BackupNow(ctx); err != nil {
				log.Printf("backup: snapshot failed: %v", err)
			} else {
				log.Printf("backup: snapshot %s (%d bytes in %v)", result.Path, result.Size, result.Duration)
			}
		}
	}
}

// BackupNow takes one verified snapshot and prunes old ones.
func (s *Service) BackupNow(ctx context.Context) (*Result, error) {
	start := time.Now()
	name := fmt.Sprintf("solace-%s.db", start.Format("20060102-150405"))
	destPath := filepath.Join(s.backupDir, name)

	if err := snapshotSQLite(ctx, s.dbPath, destPath); err != nil {
		return nil, err
	}
	if err := verifySnapshot(ctx, destPath); err != nil {
		_ = os.Remove(destPath)
		return nil, err
	}
	if err := prune(s.backupDir, s.keep); err != nil {
		log.Printf("backup: prune failed: %v", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("backup: stat snapshot: %w", err)
	}

	s.mu.Lock()
	s.lastRun = start
	s.lastPath = destPath
	s.mu.Unlock()

	return &Result{Path: destPath, Size: info.Size(), Duration: time.Since(start)}, nil
}

// LastBackup returns the time and path of the most recent snapshot,
// zero values when none has run yet.
func (s *Service) LastBackup() (time.Time, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastPath
}

// snapshotSQLite creates a consistent copy with VACUUM INTO, which
// handles WAL mode correctly.
func snapshotSQLite(ctx context.Context, sourcePath, destPath string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", sourcePath))
	if err != nil {
		return fmt.Errorf("backup: open source: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("backup: ping source: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("backup: vacuum into: %w", err)
	}
	return nil
}

// verifySnapshot runs SQLite's integrity check against the snapshot.
func verifySnapshot(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return fmt.Errorf("backup: open snapshot: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("backup: integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("backup: integrity check failed: %s", result)
	}
	return nil
}
