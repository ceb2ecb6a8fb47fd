package client

import (
	"errors"
	"fmt"

	"github.com/madhava-poojari/dashboard-web/internal/models"
)

var (
	ErrInvalidStudentID = errors.New("client: student id is required")

	// Kinds of FetchError; match with errors.Is.
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected http status")
	ErrDecode    = errors.New("malformed envelope")
	ErrFailure   = errors.New("backend reported failure")
)

// FetchError describes why a backend call produced no payload.
type FetchError struct {
	Kind       error
	Path       string
	StatusCode int
	Code       string // envelope "error"
	Message    string // envelope "message"
	Meta       *models.Meta
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("GET %s: %v", e.Path, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *FetchError) retryable() bool {
	switch e.Kind {
	case ErrTransport:
		return true
	case ErrStatus:
		return e.StatusCode >= 500
	}
	return false
}

// StudentError names the student whose fetch failed inside a batch.
type StudentError struct {
	StudentID string
	Err       error
}

func (e *StudentError) Error() string {
	return fmt.Sprintf("student %s: %v", e.StudentID, e.Err)
}

func (e *StudentError) Unwrap() error { return e.Err }
