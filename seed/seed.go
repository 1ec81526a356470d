// Package seed loads the bundled reference catalog (achievements, practice tips,
// driving ranges and sample courses) into the database.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Achievements  []achievementEntry  `yaml:"achievements"`
	PracticeTips  []practiceTipEntry  `yaml:"practice_tips"`
	DrivingRanges []drivingRangeEntry `yaml:"driving_ranges"`
	Courses       []courseEntry       `yaml:"courses"`
}

type achievementEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Criteria    struct {
		Type  string `yaml:"type"`
		Value int    `yaml:"value"`
	} `yaml:"criteria"`
	ImageURL string `yaml:"image_url"`
}

type practiceTipEntry struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	YoutubeLink     string `yaml:"youtube_link"`
	Category        string `yaml:"category"`
	DifficultyLevel int    `yaml:"difficulty_level"`
}

type drivingRangeEntry struct {
	Name        string   `yaml:"name"`
	Address     string   `yaml:"address"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	Latitude    *float64 `yaml:"latitude"`
	Longitude   *float64 `yaml:"longitude"`
	PhoneNumber string   `yaml:"phone_number"`
	Website     string   `yaml:"website"`
}

type courseEntry struct {
	Name      string   `yaml:"name"`
	Address   string   `yaml:"address"`
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Pars      []int    `yaml:"pars"`
	Yardages  []int    `yaml:"yardages"`
	Handicaps []int    `yaml:"handicaps"`
}

// Repositories are the stores the catalog is written to.
type Repositories struct {
	Achievements  repositories.AchievementRepository
	PracticeTips  repositories.PracticeTipRepository
	DrivingRanges repositories.DrivingRangeRepository
	Courses       repositories.CourseRepository
}

// Summary counts what Apply wrote. Existing achievements, tips and ranges are left untouched,
// courses and their holes are refreshed.
type Summary struct {
	Achievements  int
	PracticeTips  int
	DrivingRanges int
	Courses       int
	Holes         int
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	for _, a := range c.Achievements {
		if a.Name == "" {
			errs = append(errs, errors.New("achievement without a name"))
		}
		if err := a.criterion().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("achievement %q: %w", a.Name, err))
		}
	}
	for _, t := range c.PracticeTips {
		if t.Title == "" {
			errs = append(errs, errors.New("practice tip without a title"))
		}
		if !models.PracticeCategory(t.Category).Valid() {
			errs = append(errs, fmt.Errorf("practice tip %q: unknown category %q", t.Title, t.Category))
		}
		if models.DifficultyDisplay(t.DifficultyLevel) == "" {
			errs = append(errs, fmt.Errorf("practice tip %q: difficulty must be 1..5", t.Title))
		}
	}
	for _, r := range c.DrivingRanges {
		if r.Name == "" || r.City == "" {
			errs = append(errs, fmt.Errorf("driving range %q: name and city are required", r.Name))
		}
	}
	for _, co := range c.Courses {
		if co.Name == "" || co.City == "" {
			errs = append(errs, fmt.Errorf("course %q: name and city are required", co.Name))
		}
		n := len(co.Pars)
		if n != 9 && n != 18 {
			errs = append(errs, fmt.Errorf("course %q: expected 9 or 18 holes, got %d", co.Name, n))
		}
		if len(co.Yardages) != n || len(co.Handicaps) != n {
			errs = append(errs, fmt.Errorf("course %q: pars, yardages and handicaps differ in length", co.Name))
		}
		for i, par := range co.Pars {
			if par < 3 || par > 6 {
				errs = append(errs, fmt.Errorf("course %q: hole %d has par %d", co.Name, i+1, par))
			}
		}
	}
	return errors.Join(errs...)
}

func (a achievementEntry) criterion() models.Criterion {
	return models.Criterion{Kind: models.CriterionKind(a.Criteria.Type), Threshold: a.Criteria.Value}
}

// Apply writes the catalog in a single transaction.
func (c *Catalog) Apply(ctx context.Context, db *sql.DB, repos Repositories) (Summary, error) {
	var sum Summary
	err := repositories.WithTx(ctx, db, func(tx *sql.Tx) error {
		sum = Summary{}

		for _, a := range c.Achievements {
			inserted, err := repos.Achievements.InsertIfMissing(ctx, tx, &models.Achievement{
				Name:        a.Name,
				Description: a.Description,
				Criterion:   a.criterion(),
				ImageURL:    optional(a.ImageURL),
			})
			if err != nil {
				return err
			}
			if inserted {
				sum.Achievements++
			}
		}

		for _, t := range c.PracticeTips {
			inserted, err := repos.PracticeTips.InsertIfMissing(ctx, tx, &models.PracticeTip{
				Title:           t.Title,
				Description:     t.Description,
				YoutubeLink:     optional(t.YoutubeLink),
				Category:        models.PracticeCategory(t.Category),
				DifficultyLevel: t.DifficultyLevel,
			})
			if err != nil {
				return err
			}
			if inserted {
				sum.PracticeTips++
			}
		}

		for _, r := range c.DrivingRanges {
			inserted, err := repos.DrivingRanges.InsertIfMissing(ctx, tx, &models.DrivingRange{
				Name:        r.Name,
				Address:     optional(r.Address),
				City:        r.City,
				State:       optional(r.State),
				Latitude:    nullDecimal(r.Latitude),
				Longitude:   nullDecimal(r.Longitude),
				PhoneNumber: optional(r.PhoneNumber),
				Website:     optional(r.Website),
			})
			if err != nil {
				return err
			}
			if inserted {
				sum.DrivingRanges++
			}
		}

		for _, co := range c.Courses {
			course := co.toModel()
			if err := repos.Courses.Upsert(ctx, tx, &course); err != nil {
				return err
			}
			sum.Courses++
			for i := range course.Holes {
				hole := course.Holes[i]
				hole.CourseID = course.ID
				if err := repos.Courses.UpsertHole(ctx, tx, &hole); err != nil {
					return err
				}
				sum.Holes++
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("seed failed: %w", err)
	}

	slog.InfoContext(ctx, "seed catalog applied",
		slog.Int("achievements", sum.Achievements),
		slog.Int("practice_tips", sum.PracticeTips),
		slog.Int("driving_ranges", sum.DrivingRanges),
		slog.Int("courses", sum.Courses),
		slog.Int("holes", sum.Holes),
	)
	return sum, nil
}

func (co courseEntry) toModel() models.Course {
	course := models.Course{
		Name:          co.Name,
		Address:       optional(co.Address),
		City:          co.City,
		State:         optional(co.State),
		Latitude:      nullDecimal(co.Latitude),
		Longitude:     nullDecimal(co.Longitude),
		NumberOfHoles: len(co.Pars),
	}
	total := 0
	for i, par := range co.Pars {
		total += par
		yardage, handicap := co.Yardages[i], co.Handicaps[i]
		course.Holes = append(course.Holes, models.Hole{
			HoleNumber:    i + 1,
			Par:           par,
			Yardage:       &yardage,
			HandicapIndex: &handicap,
		})
	}
	course.Par = &total
	return course
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}
