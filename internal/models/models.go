package models

import "encoding/json"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// ProgressLog is the progress-log payload as the backend sends it. Its
// schema belongs to the backend, so it is passed through untouched.
type ProgressLog = json.RawMessage
