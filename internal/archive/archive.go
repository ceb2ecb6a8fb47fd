// Package archive stores exported progress-log payloads on local disk or
// Cloudflare R2.
package archive

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/models"
)

type Archiver interface {
	// SaveProgressLog stores log and returns its key relative to the archive root.
	SaveProgressLog(ctx context.Context, studentID string, log models.ProgressLog) (string, error)
}

var ErrEmptyLog = errors.New("archive: progress log is empty")

// New picks R2 when every R2 setting is present, local disk otherwise.
func New(cfg *config.Config) Archiver {
	if cfg.R2Enabled() {
		return NewR2Archive(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Endpoint, cfg.R2BucketName)
	}
	return NewFileArchive(cfg.ArchiveDir)
}

// progressLogKey is progress-logs/<studentID>/<unixnano>.json, forward slashes.
// The id is always a single segment; "." and ".." are spelled out as %2E.
func progressLogKey(studentID string, now time.Time) string {
	seg := url.PathEscape(studentID)
	if seg == "." || seg == ".." {
		seg = strings.ReplaceAll(seg, ".", "%2E")
	}
	return fmt.Sprintf("progress-logs/%s/%d.json", seg, now.UnixNano())
}
