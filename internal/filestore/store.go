// Package filestore owns the upload and output directories: saving
// validated uploads, resolving artifact paths, and sweeping files past
// the retention window.
package filestore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotAnImage = errors.New("invalid file type, must be an image")
	ErrTooLarge   = errors.New("file too large")
)

// ArtifactExtension is the extension of exported mesh artifacts.
const ArtifactExtension = "glb"

// Store manages sketch uploads and mesh outputs on disk.
type Store struct {
	logger          *slog.Logger
	uploadsDir      string
	outputsDir      string
	maxUploadBytes  int64
	retentionPeriod time.Duration
}

// Config holds filestore configuration.
type Config struct {
	Logger          *slog.Logger
	UploadsDir      string
	OutputsDir      string
	MaxUploadSizeMB int
	RetentionPeriod time.Duration
}

// New creates a Store. Call Setup before use.
func New(cfg *Config) *Store {
	return &Store{
		logger:          cfg.Logger,
		uploadsDir:      cfg.UploadsDir,
		outputsDir:      cfg.OutputsDir,
		maxUploadBytes:  int64(cfg.MaxUploadSizeMB) * 1024 * 1024,
		retentionPeriod: cfg.RetentionPeriod,
	}
}

// Setup creates the upload and output directories. The service reports
// ready only after this succeeds.
func (s *Store) Setup() error {
	for _, dir := range []string{s.uploadsDir, s.outputsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MaxUploadBytes returns the configured upload size ceiling.
func (s *Store) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// SaveUpload validates and stores an uploaded sketch, returning the
// generated mesh id and the saved file's path.
func (s *Store) SaveUpload(contentType string, data []byte) (meshID, path string, err error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", ErrNotAnImage
	}

	if int64(len(data)) > s.maxUploadBytes {
		return "", "", fmt.Errorf("%w: maximum size is %dMB", ErrTooLarge, s.maxUploadBytes/(1024*1024))
	}

	meshID = uuid.New().String()

	ext := "png"
	if strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg") {
		ext = "jpg"
	}

	path = filepath.Join(s.uploadsDir, fmt.Sprintf("%s.%s", meshID, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}

	s.logger.Info("Saved upload",
		slog.String("mesh_id", meshID),
		slog.String("path", path),
		slog.Int("size_bytes", len(data)),
	)

	return meshID, path, nil
}

// OutputPath returns the artifact path for a mesh id.
func (s *Store) OutputPath(meshID string) string {
	return filepath.Join(s.outputsDir, fmt.Sprintf("%s.%s", meshID, ArtifactExtension))
}

// Exists reports whether path exists and is a regular file.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
