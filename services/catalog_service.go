package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/shopspring/decimal"
)

// CatalogService manages the shared reference data: driving ranges and practice tips.
type CatalogService interface {
	CreateDrivingRange(ctx context.Context, input DrivingRangeInput) (*models.DrivingRange, error)
	GetDrivingRange(ctx context.Context, id int) (*models.DrivingRange, error)
	ListDrivingRanges(ctx context.Context) ([]models.DrivingRange, error)
	UpdateDrivingRange(ctx context.Context, id int, input DrivingRangeInput) (*models.DrivingRange, error)
	DeleteDrivingRange(ctx context.Context, id int) error

	CreatePracticeTip(ctx context.Context, input PracticeTipInput) (*models.PracticeTip, error)
	GetPracticeTip(ctx context.Context, id int) (*models.PracticeTip, error)
	ListPracticeTips(ctx context.Context, category string) ([]models.PracticeTip, error)
	UpdatePracticeTip(ctx context.Context, id int, input PracticeTipInput) (*models.PracticeTip, error)
	DeletePracticeTip(ctx context.Context, id int) error
}

type DrivingRangeInput struct {
	Name        string              `json:"name"`
	Address     *string             `json:"address"`
	City        string              `json:"city"`
	State       *string             `json:"state"`
	Latitude    decimal.NullDecimal `json:"latitude"`
	Longitude   decimal.NullDecimal `json:"longitude"`
	PhoneNumber *string             `json:"phone_number"`
	Website     *string             `json:"website"`
}

func (in DrivingRangeInput) toModel(id int) (*models.DrivingRange, error) {
	v := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	city := strings.TrimSpace(in.City)
	if name == "" {
		v.Add("name", "must be provided")
	}
	if city == "" {
		v.Add("city", "must be provided")
	}
	validateCoordinates(v, in.Latitude, in.Longitude)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &models.DrivingRange{
		ID:          id,
		Name:        name,
		Address:     trimOptional(in.Address),
		City:        city,
		State:       trimOptional(in.State),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		PhoneNumber: trimOptional(in.PhoneNumber),
		Website:     trimOptional(in.Website),
	}, nil
}

func validateCoordinates(v *ValidationError, lat, lon decimal.NullDecimal) {
	if lat.Valid && lat.Decimal.Abs().GreaterThan(decimal.NewFromInt(90)) {
		v.Add("latitude", "must be between -90 and 90")
	}
	if lon.Valid && lon.Decimal.Abs().GreaterThan(decimal.NewFromInt(180)) {
		v.Add("longitude", "must be between -180 and 180")
	}
}

type PracticeTipInput struct {
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	YoutubeLink     *string                 `json:"youtube_link"`
	Category        models.PracticeCategory `json:"category"`
	DifficultyLevel int                     `json:"difficulty_level"`
}

func (in PracticeTipInput) toModel(id int) (*models.PracticeTip, error) {
	v := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		v.Add("title", "must be provided")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "must be provided")
	}
	if !in.Category.Valid() {
		v.Add("category", "must be one of DRIVING, PUTTING, CHIPPING, IRON_PLAY, COURSE_MANAGEMENT")
	}
	if in.DifficultyLevel < 1 || in.DifficultyLevel > 5 {
		v.Add("difficulty_level", "must be between 1 and 5")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	tip := &models.PracticeTip{
		ID:              id,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		YoutubeLink:     trimOptional(in.YoutubeLink),
		Category:        in.Category,
		DifficultyLevel: in.DifficultyLevel,
	}
	tip.FillDisplay()
	return tip, nil
}

type catalogService struct {
	rangeRepo repositories.DrivingRangeRepository
	tipRepo   repositories.PracticeTipRepository
}

func NewCatalogService(rangeRepo repositories.DrivingRangeRepository, tipRepo repositories.PracticeTipRepository) CatalogService {
	return &catalogService{
		rangeRepo: rangeRepo,
		tipRepo:   tipRepo,
	}
}

func mapDrivingRangeError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrDrivingRangeNotFound):
		return ErrDrivingRangeNotFound
	case errors.Is(err, repositories.ErrDrivingRangeConflict):
		return ErrDrivingRangeNameConflict
	}
	return fmt.Errorf("failed to %s driving range: %w", op, err)
}

func mapPracticeTipError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrPracticeTipNotFound):
		return ErrPracticeTipNotFound
	case errors.Is(err, repositories.ErrPracticeTipConflict):
		return ErrPracticeTipTitleConflict
	}
	return fmt.Errorf("failed to %s practice tip: %w", op, err)
}

func (s *catalogService) CreateDrivingRange(ctx context.Context, input DrivingRangeInput) (*models.DrivingRange, error) {
	dr, err := input.toModel(0)
	if err != nil {
		return nil, err
	}
	if err := s.rangeRepo.Create(ctx, nil, dr); err != nil {
		return nil, mapDrivingRangeError(err, "create")
	}
	return dr, nil
}

func (s *catalogService) GetDrivingRange(ctx context.Context, id int) (*models.DrivingRange, error) {
	dr, err := s.rangeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapDrivingRangeError(err, "get")
	}
	return dr, nil
}

func (s *catalogService) ListDrivingRanges(ctx context.Context) ([]models.DrivingRange, error) {
	ranges, err := s.rangeRepo.List(ctx)
	if err != nil {
		return nil, mapDrivingRangeError(err, "list")
	}
	return ranges, nil
}

func (s *catalogService) UpdateDrivingRange(ctx context.Context, id int, input DrivingRangeInput) (*models.DrivingRange, error) {
	dr, err := input.toModel(id)
	if err != nil {
		return nil, err
	}
	if err := s.rangeRepo.Update(ctx, dr); err != nil {
		return nil, mapDrivingRangeError(err, "update")
	}
	return dr, nil
}

func (s *catalogService) DeleteDrivingRange(ctx context.Context, id int) error {
	if err := s.rangeRepo.Delete(ctx, id); err != nil {
		return mapDrivingRangeError(err, "delete")
	}
	return nil
}

func (s *catalogService) CreatePracticeTip(ctx context.Context, input PracticeTipInput) (*models.PracticeTip, error) {
	tip, err := input.toModel(0)
	if err != nil {
		return nil, err
	}
	if err := s.tipRepo.Create(ctx, tip); err != nil {
		return nil, mapPracticeTipError(err, "create")
	}
	return tip, nil
}

func (s *catalogService) GetPracticeTip(ctx context.Context, id int) (*models.PracticeTip, error) {
	tip, err := s.tipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPracticeTipError(err, "get")
	}
	return tip, nil
}

// ListPracticeTips filters by category when one is given; an empty string lists all tips.
func (s *catalogService) ListPracticeTips(ctx context.Context, category string) ([]models.PracticeTip, error) {
	var filter *models.PracticeCategory
	if category = strings.TrimSpace(category); category != "" {
		c := models.PracticeCategory(strings.ToUpper(category))
		if !c.Valid() {
			return nil, newValidationError("category", "unknown practice category")
		}
		filter = &c
	}
	tips, err := s.tipRepo.List(ctx, filter)
	if err != nil {
		return nil, mapPracticeTipError(err, "list")
	}
	return tips, nil
}

func (s *catalogService) UpdatePracticeTip(ctx context.Context, id int, input PracticeTipInput) (*models.PracticeTip, error) {
	tip, err := input.toModel(id)
	if err != nil {
		return nil, err
	}
	if err := s.tipRepo.Update(ctx, tip); err != nil {
		return nil, mapPracticeTipError(err, "update")
	}
	return tip, nil
}

func (s *catalogService) DeletePracticeTip(ctx context.Context, id int) error {
	if err := s.tipRepo.Delete(ctx, id); err != nil {
		return mapPracticeTipError(err, "delete")
	}
	return nil
}
