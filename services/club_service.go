package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/shopspring/decimal"
)

type ClubService interface {
	CreateClub(ctx context.Context, userID int, input ClubInput) (*models.Club, error)
	GetClub(ctx context.Context, id, userID int) (*models.Club, error)
	ListClubs(ctx context.Context, userID int) ([]models.Club, error)
	UpdateClub(ctx context.Context, id, userID int, input ClubInput) (*models.Club, error)
	DeleteClub(ctx context.Context, id, userID int) error
}

type ClubInput struct {
	ClubType             models.ClubType     `json:"club_type"`
	AverageDistanceYards decimal.NullDecimal `json:"average_distance_yards"`
	Notes                *string             `json:"notes"`
}

func (in ClubInput) validate() error {
	v := &ValidationError{}
	if !in.ClubType.Valid() {
		v.Add("club_type", "must be one of Driver, Wood, Hybrid, Iron, Wedge, Putter, Other")
	}
	if in.AverageDistanceYards.Valid && in.AverageDistanceYards.Decimal.IsNegative() {
		v.Add("average_distance_yards", "must not be negative")
	}
	return v.OrNil()
}

type clubService struct {
	clubRepo repositories.ClubRepository
}

func NewClubService(clubRepo repositories.ClubRepository) ClubService {
	return &clubService{clubRepo: clubRepo}
}

func (s *clubService) CreateClub(ctx context.Context, userID int, input ClubInput) (*models.Club, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	club := &models.Club{
		UserID:               userID,
		ClubType:             input.ClubType,
		AverageDistanceYards: input.AverageDistanceYards,
		Notes:                trimOptional(input.Notes),
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

func (s *clubService) GetClub(ctx context.Context, id, userID int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", id, err)
	}
	return club, nil
}

func (s *clubService) ListClubs(ctx context.Context, userID int) ([]models.Club, error) {
	clubs, err := s.clubRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

func (s *clubService) UpdateClub(ctx context.Context, id, userID int, input ClubInput) (*models.Club, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	club := &models.Club{
		ID:                   id,
		UserID:               userID,
		ClubType:             input.ClubType,
		AverageDistanceYards: input.AverageDistanceYards,
		Notes:                trimOptional(input.Notes),
	}
	if err := s.clubRepo.Update(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to update club %d: %w", id, err)
	}
	return club, nil
}

func (s *clubService) DeleteClub(ctx context.Context, id, userID int) error {
	if err := s.clubRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to delete club %d: %w", id, err)
	}
	return nil
}
