package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownCriterion      = errors.New("unknown achievement criterion type")
	ErrInvalidCriterionValue = errors.New("achievement criterion value must be positive")
)

type CriterionKind string

const (
	CriterionTotalRounds CriterionKind = "total_rounds"
	CriterionScoreBelow  CriterionKind = "score_below"
	CriterionFairwaysHit CriterionKind = "fairways_hit"
	CriterionPuttsBelow  CriterionKind = "putts_below"
	CriterionSandSaves   CriterionKind = "sand_saves"
)

func (k CriterionKind) Valid() bool {
	switch k {
	case CriterionTotalRounds, CriterionScoreBelow, CriterionFairwaysHit, CriterionPuttsBelow, CriterionSandSaves:
		return true
	}
	return false
}

// Criterion is the rule an achievement is granted by. On the wire and in the
// database it is {"type": <kind>, "value": <threshold>}.
type Criterion struct {
	Kind      CriterionKind `json:"type"`
	Threshold int           `json:"value"`
}

func (c Criterion) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCriterion, c.Kind)
	}
	if c.Threshold <= 0 {
		return ErrInvalidCriterionValue
	}
	return nil
}

func (c *Criterion) UnmarshalJSON(data []byte) error {
	type plain Criterion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	parsed := Criterion(p)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer for the JSONB column.
func (c Criterion) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner for the JSONB column.
func (c *Criterion) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		return errors.New("achievement criterion is null")
	default:
		return fmt.Errorf("unsupported criterion source type %T", src)
	}
	return json.Unmarshal(b, c)
}

type Achievement struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Criterion   Criterion `json:"criteria" db:"criterion"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UserAchievement struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	DateAchieved time.Time `json:"date_achieved" db:"date_achieved"`

	Achievement Achievement `json:"achievement" db:"-"`
}

// RoundFacts are the per-round aggregates criteria are checked against.
type RoundFacts struct {
	RoundID       int
	TotalScore    *int
	FairwaysHit   int
	SandSaves     int
	HolesPlayed   int
	HolesWithPutt int
	TotalPutts    int
}

// PlayerRecord is everything needed to evaluate criteria for one user:
// the completed-round count and facts for each completed round.
type PlayerRecord struct {
	UserID          int
	CompletedRounds int
	Rounds          []RoundFacts
}

// Satisfies reports whether the record meets the criterion.
func (r PlayerRecord) Satisfies(c Criterion) bool {
	switch c.Kind {
	case CriterionTotalRounds:
		return r.CompletedRounds >= c.Threshold
	case CriterionScoreBelow:
		for _, f := range r.Rounds {
			if f.TotalScore != nil && *f.TotalScore < c.Threshold {
				return true
			}
		}
	case CriterionFairwaysHit:
		for _, f := range r.Rounds {
			if f.FairwaysHit >= c.Threshold {
				return true
			}
		}
	case CriterionPuttsBelow:
		for _, f := range r.Rounds {
			if f.HolesPlayed > 0 && f.HolesWithPutt == f.HolesPlayed && f.TotalPutts <= c.Threshold {
				return true
			}
		}
	case CriterionSandSaves:
		for _, f := range r.Rounds {
			if f.SandSaves >= c.Threshold {
				return true
			}
		}
	}
	return false
}
