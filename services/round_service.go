package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

const roundDateLayout = "2006-01-02"

type RoundService interface {
	CreateRound(ctx context.Context, userID int, input RoundInput) (*models.Round, error)
	GetRound(ctx context.Context, id, userID int) (*models.Round, error)
	ListRounds(ctx context.Context, userID int) ([]models.Round, error)
	UpdateRound(ctx context.Context, id, userID int, input RoundInput) (*models.Round, error)
	DeleteRound(ctx context.Context, id, userID int) error

	// ComputeTotalScore stores the sum of the round's hole scores; nil when it has none.
	ComputeTotalScore(ctx context.Context, id, userID int) (*int, error)
	ShareRound(ctx context.Context, id, userID int) (uuid.UUID, error)
	GetSharedRound(ctx context.Context, token string) (*models.SharedRoundSummary, error)
	SuggestClubs(ctx context.Context, userID int) (*models.ClubSuggestionReport, error)
}

type RoundInput struct {
	CourseID    *int   `json:"course_id"`
	Date        string `json:"date"`
	IsCompleted bool   `json:"is_completed"`
}

func (in RoundInput) parseDate(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(in.Date)
	if raw == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(roundDateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, newValidationError("date", "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

type roundService struct {
	roundRepo     repositories.RoundRepository
	holeScoreRepo repositories.HoleScoreRepository
	evaluator     AchievementEvaluator
	notifier      RoundNotifier
	now           func() time.Time
}

// NewRoundService wires the round service. evaluator and notifier may be nil.
func NewRoundService(
	roundRepo repositories.RoundRepository,
	holeScoreRepo repositories.HoleScoreRepository,
	evaluator AchievementEvaluator,
	notifier RoundNotifier,
) RoundService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &roundService{
		roundRepo:     roundRepo,
		holeScoreRepo: holeScoreRepo,
		evaluator:     evaluator,
		notifier:      notifier,
		now:           time.Now,
	}
}

func mapRoundError(err error, op string, id int) error {
	switch {
	case errors.Is(err, repositories.ErrRoundNotFound):
		return ErrRoundNotFound
	case errors.Is(err, repositories.ErrRoundCourseInvalid):
		return newValidationError("course_id", "course does not exist")
	}
	return fmt.Errorf("failed to %s round %d: %w", op, id, err)
}

func (s *roundService) CreateRound(ctx context.Context, userID int, input RoundInput) (*models.Round, error) {
	date, err := input.parseDate(s.now())
	if err != nil {
		return nil, err
	}
	round := &models.Round{
		UserID:      userID,
		CourseID:    input.CourseID,
		Date:        date,
		IsCompleted: input.IsCompleted,
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, mapRoundError(err, "create", 0)
	}
	if round.IsCompleted {
		s.evaluateAchievements(ctx, userID)
	}
	return round, nil
}

func (s *roundService) GetRound(ctx context.Context, id, userID int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapRoundError(err, "get", id)
	}
	scores, err := s.holeScoreRepo.ListByUser(ctx, userID, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to list hole scores for round %d: %w", id, err)
	}
	round.HoleScores = scores
	return round, nil
}

func (s *roundService) ListRounds(ctx context.Context, userID int) ([]models.Round, error) {
	rounds, err := s.roundRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) UpdateRound(ctx context.Context, id, userID int, input RoundInput) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapRoundError(err, "get", id)
	}
	date, err := input.parseDate(s.now())
	if err != nil {
		return nil, err
	}

	wasCompleted := round.IsCompleted
	round.CourseID = input.CourseID
	round.Date = date
	round.IsCompleted = input.IsCompleted

	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, mapRoundError(err, "update", id)
	}

	if round.IsCompleted && !wasCompleted {
		s.evaluateAchievements(ctx, userID)
	}
	if round.ShareableToken != nil {
		s.publishSummary(ctx, id)
	}
	return round, nil
}

func (s *roundService) DeleteRound(ctx context.Context, id, userID int) error {
	if err := s.roundRepo.Delete(ctx, id, userID); err != nil {
		return mapRoundError(err, "delete", id)
	}
	return nil
}

func (s *roundService) ComputeTotalScore(ctx context.Context, id, userID int) (*int, error) {
	total, completed, err := s.roundRepo.ComputeTotalScore(ctx, id, userID)
	if err != nil {
		return nil, mapRoundError(err, "compute total score for", id)
	}
	if completed {
		s.evaluateAchievements(ctx, userID)
	}
	s.publishSummary(ctx, id)
	return total, nil
}

func (s *roundService) ShareRound(ctx context.Context, id, userID int) (uuid.UUID, error) {
	token, err := s.roundRepo.EnsureShareToken(ctx, id, userID, uuid.New())
	if err != nil {
		return uuid.Nil, mapRoundError(err, "share", id)
	}
	return token, nil
}

func (s *roundService) GetSharedRound(ctx context.Context, token string) (*models.SharedRoundSummary, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrSharedRoundNotFound
	}
	summary, err := s.roundRepo.GetSharedSummary(ctx, parsed)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrSharedRoundNotFound
		}
		return nil, fmt.Errorf("failed to get shared round: %w", err)
	}
	return summary, nil
}

func (s *roundService) SuggestClubs(ctx context.Context, userID int) (*models.ClubSuggestionReport, error) {
	results, err := s.roundRepo.ListRecentHoleResults(ctx, userID, advisorRecentRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent rounds: %w", err)
	}
	return adviseClubs(results)
}

// evaluateAchievements runs after the round change is already persisted, so a failure is logged only.
func (s *roundService) evaluateAchievements(ctx context.Context, userID int) {
	if s.evaluator == nil {
		return
	}
	if _, err := s.evaluator.EvaluateUser(ctx, userID, TriggerRoundCompleted); err != nil {
		slog.ErrorContext(ctx, "achievement evaluation after round completion failed",
			slog.Int("user_id", userID), slog.Any("error", err))
	}
}

func (s *roundService) publishSummary(ctx context.Context, roundID int) {
	summary, err := s.roundRepo.GetSharedSummaryByID(ctx, roundID)
	if err != nil {
		if !errors.Is(err, repositories.ErrRoundNotFound) {
			slog.WarnContext(ctx, "failed to load round summary for broadcast",
				slog.Int("round_id", roundID), slog.Any("error", err))
		}
		return
	}
	s.notifier.PublishRoundSummary(*summary)
}
