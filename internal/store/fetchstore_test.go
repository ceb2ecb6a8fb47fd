package store

import (
	"context"
	"testing"

	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunStore builds SQL without a database and captures the last statement.
func dryRunStore(t *testing.T) (*Store, *string) {
	t.Helper()
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	require.NoError(t, err)

	var last string
	capture := func(tx *gorm.DB) { last = tx.Statement.SQL.String() }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", capture))
	return &Store{DB: db}, &last
}

func TestListFetchesByStudentQuery(t *testing.T) {
	s, last := dryRunStore(t)

	_, err := s.ListFetchesByStudent(context.Background(), "STU001", 0)
	require.NoError(t, err)
	assert.Contains(t, *last, `FROM "progress_log_fetches"`)
	assert.Contains(t, *last, "student_id = $1")
	assert.Contains(t, *last, "ORDER BY created_at desc, id desc")
	assert.Contains(t, *last, "LIMIT")
}

func TestRecordFetchSetsCreatedAt(t *testing.T) {
	s, last := dryRunStore(t)

	f := &models.ProgressLogFetch{StudentID: "STU001", Outcome: models.FetchOutcomeSuccess, StatusCode: 200}
	require.NoError(t, s.RecordFetch(context.Background(), f))
	assert.False(t, f.CreatedAt.IsZero())
	assert.Contains(t, *last, `INSERT INTO "progress_log_fetches"`)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0))
	assert.Equal(t, 50, ClampLimit(-3))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, maxFetchListLimit, ClampLimit(10_000))
}
