package models

import (
	"time"

	"gorm.io/datatypes"
)

type FetchOutcome string

const (
	FetchOutcomeSuccess   FetchOutcome = "success"
	FetchOutcomeFailure   FetchOutcome = "failure"
	FetchOutcomeStatus    FetchOutcome = "status"
	FetchOutcomeTransport FetchOutcome = "transport"
	FetchOutcomeDecode    FetchOutcome = "decode"
)

// ProgressLogFetch is one audited progress-log request made through the gateway.
// The payload itself is never stored, only its size.
type ProgressLogFetch struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RequestID    string         `gorm:"size:36;index" json:"request_id"`
	StudentID    string         `gorm:"index;not null" json:"student_id"`
	RequestedBy  string         `gorm:"size:64" json:"requested_by"`
	Outcome      FetchOutcome   `gorm:"type:text;not null" json:"outcome"`
	StatusCode   int            `json:"status_code"`
	ErrorCode    string         `json:"error_code,omitempty"`
	DurationMs   int64          `json:"duration_ms"`
	PayloadBytes int            `json:"payload_bytes"`
	Meta         datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}
