package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

type HoleScoreService interface {
	CreateHoleScore(ctx context.Context, userID int, input HoleScoreInput) (*models.HoleScore, error)
	GetHoleScore(ctx context.Context, id, userID int) (*models.HoleScore, error)
	ListHoleScores(ctx context.Context, userID int, roundID *int) ([]models.HoleScore, error)
	UpdateHoleScore(ctx context.Context, id, userID int, input HoleScoreInput) (*models.HoleScore, error)
	DeleteHoleScore(ctx context.Context, id, userID int) error
}

// HoleScoreInput is the writable part of a hole score. RoundID and HoleNumber are only read on create.
type HoleScoreInput struct {
	RoundID    int  `json:"round"`
	HoleNumber int  `json:"hole_number"`
	Score      int  `json:"score"`
	Putts      *int `json:"putts"`
	FairwayHit bool `json:"fairway_hit"`
	SandSave   bool `json:"sand_save"`
}

func (in HoleScoreInput) validateStrokes(v *ValidationError) {
	if in.Score < 1 {
		v.Add("score", "must be at least 1")
	}
	if in.Putts != nil {
		if *in.Putts < 0 {
			v.Add("putts", "must not be negative")
		} else if *in.Putts > in.Score && in.Score >= 1 {
			v.Add("putts", "must not exceed the hole score")
		}
	}
}

type holeScoreService struct {
	holeScoreRepo repositories.HoleScoreRepository
	roundRepo     repositories.RoundRepository
	courseRepo    repositories.CourseRepository
}

func NewHoleScoreService(
	holeScoreRepo repositories.HoleScoreRepository,
	roundRepo repositories.RoundRepository,
	courseRepo repositories.CourseRepository,
) HoleScoreService {
	return &holeScoreService{
		holeScoreRepo: holeScoreRepo,
		roundRepo:     roundRepo,
		courseRepo:    courseRepo,
	}
}

// CreateHoleScore records a score on one of the caller's rounds. The hole must exist on the
// round's course, so rounds without a course cannot take hole scores.
func (s *holeScoreService) CreateHoleScore(ctx context.Context, userID int, input HoleScoreInput) (*models.HoleScore, error) {
	v := &ValidationError{}
	if input.RoundID <= 0 {
		v.Add("round", "must be provided")
	}
	if input.HoleNumber < 1 {
		v.Add("hole_number", "must be at least 1")
	}
	input.validateStrokes(v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	round, err := s.roundRepo.GetByID(ctx, input.RoundID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", input.RoundID, err)
	}
	if round.CourseID == nil {
		return nil, newValidationError("round", "round has no course; choose a course before recording hole scores")
	}

	if _, err := s.courseRepo.GetHole(ctx, *round.CourseID, input.HoleNumber); err != nil {
		if errors.Is(err, repositories.ErrHoleNotFound) {
			return nil, newValidationError("hole_number", fmt.Sprintf("Hole number %d does not exist in this course", input.HoleNumber))
		}
		return nil, fmt.Errorf("failed to check hole %d: %w", input.HoleNumber, err)
	}

	hs := &models.HoleScore{
		RoundID:    round.ID,
		HoleNumber: input.HoleNumber,
		Score:      input.Score,
		Putts:      input.Putts,
		FairwayHit: input.FairwayHit,
		SandSave:   input.SandSave,
	}
	if err := s.holeScoreRepo.Create(ctx, hs); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHoleScoreConflict):
			return nil, ErrHoleScoreConflict
		case errors.Is(err, repositories.ErrRoundNotFound):
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to create hole score: %w", err)
	}
	return hs, nil
}

func (s *holeScoreService) GetHoleScore(ctx context.Context, id, userID int) (*models.HoleScore, error) {
	hs, err := s.holeScoreRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrHoleScoreNotFound) {
			return nil, ErrHoleScoreNotFound
		}
		return nil, fmt.Errorf("failed to get hole score %d: %w", id, err)
	}
	return hs, nil
}

func (s *holeScoreService) ListHoleScores(ctx context.Context, userID int, roundID *int) ([]models.HoleScore, error) {
	scores, err := s.holeScoreRepo.ListByUser(ctx, userID, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hole scores: %w", err)
	}
	return scores, nil
}

func (s *holeScoreService) UpdateHoleScore(ctx context.Context, id, userID int, input HoleScoreInput) (*models.HoleScore, error) {
	v := &ValidationError{}
	input.validateStrokes(v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	hs := &models.HoleScore{
		ID:         id,
		Score:      input.Score,
		Putts:      input.Putts,
		FairwayHit: input.FairwayHit,
		SandSave:   input.SandSave,
	}
	if err := s.holeScoreRepo.Update(ctx, hs, userID); err != nil {
		if errors.Is(err, repositories.ErrHoleScoreNotFound) {
			return nil, ErrHoleScoreNotFound
		}
		return nil, fmt.Errorf("failed to update hole score %d: %w", id, err)
	}
	return hs, nil
}

func (s *holeScoreService) DeleteHoleScore(ctx context.Context, id, userID int) error {
	if err := s.holeScoreRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repositories.ErrHoleScoreNotFound) {
			return ErrHoleScoreNotFound
		}
		return fmt.Errorf("failed to delete hole score %d: %w", id, err)
	}
	return nil
}
