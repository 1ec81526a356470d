package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

type User struct {
	ID                  int                 `json:"id" db:"id"`
	Username            string              `json:"username" db:"username"`
	Email               string              `json:"email" db:"email"`
	PasswordHash        string              `json:"-" db:"password_hash"`
	Role                UserRole            `json:"role" db:"role"`
	IsPro               bool                `json:"is_pro" db:"is_pro"`
	PreferredHandedness *string             `json:"preferred_handedness,omitempty" db:"preferred_handedness"`
	Handicap            decimal.NullDecimal `json:"handicap" db:"handicap"`
	Bio                 *string             `json:"bio,omitempty" db:"bio"`
	PreferredRegion     *string             `json:"preferred_region,omitempty" db:"preferred_region"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`

	ProfilePictureKey *string `json:"-" db:"profile_picture_key"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" db:"-"`
}

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// UserFilter narrows the admin user listing. Page is 1-based.
type UserFilter struct {
	Search string
	Role   *UserRole
	Page   int
	Limit  int
}

type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// UserStats aggregates a user's rounds and hole scores.
type UserStats struct {
	RoundsPlayed         int      `json:"rounds_played"`
	CompletedRounds      int      `json:"completed_rounds"`
	AverageScore         *float64 `json:"average_score"`
	BestScore            *int     `json:"best_score"`
	FairwaysHit          int      `json:"fairways_hit"`
	AveragePuttsPerRound *float64 `json:"average_putts_per_round"`
}
