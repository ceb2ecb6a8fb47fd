package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Meta is the optional metadata block attached to backend responses.
type Meta struct {
	StatusCode int    `json:"statusCode"`
	ErrorCode  string `json:"errorCode,omitempty"`
	Details    any    `json:"details"`
}

// Envelope is the wrapper every backend response uses. It is either a
// Success[T] or a Failure, discriminated on the wire by the "success" flag.
type Envelope[T any] interface {
	OK() bool
	envelope()
}

// Success carries the requested resource. Data is nil when the backend sent
// no payload or an explicit null.
type Success[T any] struct {
	Data    *T
	Message string
	Meta    *Meta
}

// Failure describes a request the backend refused or could not serve.
type Failure struct {
	Error   string
	Message string
	Meta    *Meta
}

func (Success[T]) OK() bool  { return true }
func (Success[T]) envelope() {}
func (Failure) OK() bool     { return false }
func (Failure) envelope()    {}

// wireEnvelope is the JSON shape shared by both variants.
type wireEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Meta    *Meta           `json:"meta,omitempty"`
}

var ErrMissingDiscriminant = errors.New("envelope: missing success flag")

func (s Success[T]) MarshalJSON() ([]byte, error) {
	data := json.RawMessage("null")
	if s.Data != nil {
		b, err := json.Marshal(s.Data)
		if err != nil {
			return nil, err
		}
		data = b
	}
	ok := true
	return json.Marshal(wireEnvelope{Success: &ok, Data: data, Message: s.Message, Meta: s.Meta})
}

func (f Failure) MarshalJSON() ([]byte, error) {
	ok := false
	return json.Marshal(wireEnvelope{
		Success: &ok,
		Data:    json.RawMessage("null"),
		Message: f.Message,
		Error:   f.Error,
		Meta:    f.Meta,
	})
}

// DecodeEnvelope parses a response body into the matching envelope variant.
func DecodeEnvelope[T any](body []byte) (Envelope[T], error) {
	var w wireEnvelope
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	if w.Success == nil {
		return nil, ErrMissingDiscriminant
	}

	if !*w.Success {
		return Failure{Error: w.Error, Message: w.Message, Meta: w.Meta}, nil
	}

	s := Success[T]{Message: w.Message, Meta: w.Meta}
	if !isNull(w.Data) {
		v := new(T)
		if err := json.Unmarshal(w.Data, v); err != nil {
			return nil, fmt.Errorf("envelope data: %w", err)
		}
		s.Data = v
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
