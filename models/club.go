package models

import "github.com/shopspring/decimal"

type ClubType string

const (
	ClubDriver ClubType = "Driver"
	ClubWood   ClubType = "Wood"
	ClubHybrid ClubType = "Hybrid"
	ClubIron   ClubType = "Iron"
	ClubWedge  ClubType = "Wedge"
	ClubPutter ClubType = "Putter"
	ClubOther  ClubType = "Other"
)

func (t ClubType) Valid() bool {
	switch t {
	case ClubDriver, ClubWood, ClubHybrid, ClubIron, ClubWedge, ClubPutter, ClubOther:
		return true
	}
	return false
}

type Club struct {
	ID                   int                 `json:"id" db:"id"`
	UserID               int                 `json:"user_id" db:"user_id"`
	ClubType             ClubType            `json:"club_type" db:"club_type"`
	AverageDistanceYards decimal.NullDecimal `json:"average_distance_yards" db:"average_distance_yards"`
	Notes                *string             `json:"notes,omitempty" db:"notes"`
}
