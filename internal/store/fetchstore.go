package store

import (
	"context"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/models"
)

const maxFetchListLimit = 200

/* ------------------ Progress-log fetch audit ------------------ */

func (s *Store) RecordFetch(ctx context.Context, f *models.ProgressLogFetch) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return s.DB.WithContext(ctx).Create(f).Error
}

// ListFetchesByStudent returns the newest audit rows for a student first.
func (s *Store) ListFetchesByStudent(ctx context.Context, studentID string, limit int) ([]models.ProgressLogFetch, error) {
	var out []models.ProgressLogFetch
	err := s.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc, id desc").
		Limit(ClampLimit(limit)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > maxFetchListLimit {
		return maxFetchListLimit
	}
	return limit
}
