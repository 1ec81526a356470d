package models

import (
	"time"

	"github.com/google/uuid"
)

type Round struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"user_id" db:"user_id"`
	CourseID       *int       `json:"course_id,omitempty" db:"course_id"`
	Date           time.Time  `json:"date" db:"date"`
	TotalScore     *int       `json:"total_score" db:"total_score"`
	IsCompleted    bool       `json:"is_completed" db:"is_completed"`
	ShareableToken *uuid.UUID `json:"shareable_token,omitempty" db:"shareable_token"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`

	HoleScores []HoleScore `json:"hole_scores,omitempty" db:"-"`
}

type HoleScore struct {
	ID         int       `json:"id" db:"id"`
	RoundID    int       `json:"round_id" db:"round_id"`
	HoleNumber int       `json:"hole_number" db:"hole_number"`
	Score      int       `json:"score" db:"score"`
	Putts      *int      `json:"putts,omitempty" db:"putts"`
	FairwayHit bool      `json:"fairway_hit" db:"fairway_hit"`
	SandSave   bool      `json:"sand_save" db:"sand_save"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// SharedRoundSummary is the public view of a shared round. It never carries hole scores.
type SharedRoundSummary struct {
	ID            int       `json:"id"`
	CourseName    *string   `json:"course_name"`
	Username      string    `json:"username"`
	Date          time.Time `json:"date"`
	TotalScore    *int      `json:"total_score"`
	ShareableLink uuid.UUID `json:"shareable_link"`
}

// ClubSuggestion flags a hole played more than two strokes over par.
type ClubSuggestion struct {
	RoundID    int    `json:"round_id"`
	HoleNumber int    `json:"hole_number"`
	Score      int    `json:"score"`
	Par        int    `json:"par"`
	Suggestion string `json:"suggestion"`
}

type ClubSuggestionReport struct {
	Suggestions []ClubSuggestion `json:"suggestions"`
	Message     string           `json:"message,omitempty"`
}

// HoleResult is one hole score of a recent completed round joined with the par of the matching
// course hole. HoleNumber and Score are nil for a round with no hole scores; CourseID is nil when
// the round has no course; Par is nil when the course has no such hole.
type HoleResult struct {
	RoundID    int
	CourseID   *int
	HoleNumber *int
	Score      *int
	Par        *int
}
