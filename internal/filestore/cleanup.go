package filestore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CleanupLoop periodically deletes uploads and outputs older than the
// retention window. It runs until ctx is canceled, which is a clean
// exit, not an error. The sweep never touches registry entries, so a
// completed conversion can outlive its artifact; the download handler
// re-checks file presence for exactly that reason.
func (s *Store) CleanupLoop(ctx context.Context, interval time.Duration) {
	s.logger.Info("File cleanup loop started",
		slog.Duration("interval", interval),
		slog.Duration("retention_period", s.retentionPeriod),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("File cleanup loop stopped")
			return
		case <-ticker.C:
			s.CleanupOldFiles()
		}
	}
}

// CleanupOldFiles removes files older than the retention window from
// both managed directories. Errors are logged, never fatal.
func (s *Store) CleanupOldFiles() {
	cutoff := time.Now().Add(-s.retentionPeriod)

	for _, dir := range []string{s.uploadsDir, s.outputsDir} {
		s.cleanupDirectory(dir, cutoff)
	}

	s.logger.Info("File cleanup completed")
}

func (s *Store) cleanupDirectory(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Failed to read directory for cleanup",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Error("Failed to remove old file",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				continue
			}
			s.logger.Info("Removed old file",
				slog.String("path", path),
			)
		}
	}
}
