package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DrivingRange struct {
	ID          int                 `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Address     *string             `json:"address,omitempty" db:"address"`
	City        string              `json:"city" db:"city"`
	State       *string             `json:"state,omitempty" db:"state"`
	Latitude    decimal.NullDecimal `json:"latitude" db:"latitude"`
	Longitude   decimal.NullDecimal `json:"longitude" db:"longitude"`
	PhoneNumber *string             `json:"phone_number,omitempty" db:"phone_number"`
	Website     *string             `json:"website,omitempty" db:"website"`
}

type PracticeCategory string

const (
	CategoryDriving          PracticeCategory = "DRIVING"
	CategoryPutting          PracticeCategory = "PUTTING"
	CategoryChipping         PracticeCategory = "CHIPPING"
	CategoryIronPlay         PracticeCategory = "IRON_PLAY"
	CategoryCourseManagement PracticeCategory = "COURSE_MANAGEMENT"
)

var categoryDisplay = map[PracticeCategory]string{
	CategoryDriving:          "Driving",
	CategoryPutting:          "Putting",
	CategoryChipping:         "Chipping",
	CategoryIronPlay:         "Iron Play",
	CategoryCourseManagement: "Course Management",
}

func (c PracticeCategory) Valid() bool {
	_, ok := categoryDisplay[c]
	return ok
}

func (c PracticeCategory) Display() string {
	return categoryDisplay[c]
}

var difficultyDisplay = map[int]string{
	1: "Beginner",
	2: "Beginner-Intermediate",
	3: "Intermediate",
	4: "Intermediate-Advanced",
	5: "Advanced",
}

// DifficultyDisplay returns the label for a 1..5 difficulty level, or "" when out of range.
func DifficultyDisplay(level int) string {
	return difficultyDisplay[level]
}

type PracticeTip struct {
	ID                int              `json:"id" db:"id"`
	Title             string           `json:"title" db:"title"`
	Description       string           `json:"description" db:"description"`
	YoutubeLink       *string          `json:"youtube_link,omitempty" db:"youtube_link"`
	Category          PracticeCategory `json:"category" db:"category"`
	CategoryDisplay   string           `json:"category_display" db:"-"`
	DifficultyLevel   int              `json:"difficulty_level" db:"difficulty_level"`
	DifficultyDisplay string           `json:"difficulty_display" db:"-"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// FillDisplay sets the human-readable category and difficulty labels.
func (p *PracticeTip) FillDisplay() {
	p.CategoryDisplay = p.Category.Display()
	p.DifficultyDisplay = DifficultyDisplay(p.DifficultyLevel)
}
