package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/models"
)

// FileArchive writes payloads under BaseDir.
type FileArchive struct {
	BaseDir string // e.g. "./archive"
}

func NewFileArchive(baseDir string) *FileArchive {
	return &FileArchive{BaseDir: baseDir}
}

func (fa *FileArchive) SaveProgressLog(_ context.Context, studentID string, log models.ProgressLog) (string, error) {
	if len(log) == 0 {
		return "", ErrEmptyLog
	}
	key := progressLogKey(studentID, time.Now())
	fullPath := filepath.Join(fa.BaseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", fullPath, err)
	}
	if err := os.WriteFile(fullPath, log, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	return key, nil
}
