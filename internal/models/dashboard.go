package models

import "time"

// Records below mirror what the dashboard cards and tables render.

type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Grade     string `json:"grade,omitempty"`
	ClassName string `json:"class_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Activity struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Assessment struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Score     float64    `json:"score"`
	MaxScore  float64    `json:"max_score"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
}

type TopicPrediction struct {
	Topic      string  `json:"topic"`
	Mastery    float64 `json:"mastery"`
	Confidence float64 `json:"confidence"`
	Trend      string  `json:"trend,omitempty"`
}

// PlayerCard is the leaderboard tile shown on the student dashboard.
type PlayerCard struct {
	StudentID   string `json:"student_id"`
	DisplayName string `json:"display_name"`
	Rank        int    `json:"rank"`
	Points      int    `json:"points"`
	Streak      int    `json:"streak"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type StatCard struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Delta float64 `json:"delta"`
}
