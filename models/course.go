package models

import "github.com/shopspring/decimal"

type Course struct {
	ID            int                 `json:"id" db:"id"`
	Name          string              `json:"name" db:"name"`
	Address       *string             `json:"address,omitempty" db:"address"`
	City          string              `json:"city" db:"city"`
	State         *string             `json:"state,omitempty" db:"state"`
	Latitude      decimal.NullDecimal `json:"latitude" db:"latitude"`
	Longitude     decimal.NullDecimal `json:"longitude" db:"longitude"`
	NumberOfHoles int                 `json:"number_of_holes" db:"number_of_holes"`
	Par           *int                `json:"par,omitempty" db:"par"`

	Holes []Hole `json:"holes,omitempty" db:"-"`
}

type Hole struct {
	ID            int  `json:"id" db:"id"`
	CourseID      int  `json:"course_id" db:"course_id"`
	HoleNumber    int  `json:"hole_number" db:"hole_number"`
	Par           int  `json:"par" db:"par"`
	Yardage       *int `json:"yardage,omitempty" db:"yardage"`
	HandicapIndex *int `json:"handicap_index,omitempty" db:"handicap_index"`
}

// CourseWeather pairs a course with its current weather or the reason it is missing.
type CourseWeather struct {
	Course  Course   `json:"course"`
	Weather *Weather `json:"weather,omitempty"`
	Error   string   `json:"weather_error,omitempty"`
}
