package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rookieryder/golf-backend/metrics"
	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

// Источники запуска проверки достижений (метка метрики).
const (
	TriggerRoundCompleted = "round_completed"
	TriggerSweep          = "sweep"
	TriggerManual         = "manual"
	TriggerCLI            = "cli"
)

// AchievementEvaluator grants every achievement a player's record satisfies.
type AchievementEvaluator interface {
	EvaluateUser(ctx context.Context, userID int, trigger string) ([]models.Achievement, error)
}

type AchievementService interface {
	AchievementEvaluator

	CreateAchievement(ctx context.Context, input AchievementInput) (*models.Achievement, error)
	GetAchievement(ctx context.Context, id int) (*models.Achievement, error)
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
	UpdateAchievement(ctx context.Context, id int, input AchievementInput) (*models.Achievement, error)
	DeleteAchievement(ctx context.Context, id int) error

	ListUserAchievements(ctx context.Context, userID int) ([]models.UserAchievement, error)
	GetUserAchievement(ctx context.Context, id, userID int) (*models.UserAchievement, error)
	// GrantAchievement awards an achievement manually. It reports whether a new grant was recorded.
	GrantAchievement(ctx context.Context, userID, achievementID int) (bool, error)
	// EvaluateAll runs EvaluateUser for every user and returns the number of new grants.
	EvaluateAll(ctx context.Context, trigger string) (int, error)
}

type AchievementInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Criterion   models.Criterion `json:"criteria"`
	ImageURL    *string          `json:"image_url"`
}

func (in AchievementInput) toModel(id int) (*models.Achievement, error) {
	v := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.Add("name", "must be provided")
	}
	if err := in.Criterion.Validate(); err != nil {
		v.Add("criteria", err.Error())
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &models.Achievement{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Criterion:   in.Criterion,
		ImageURL:    trimOptional(in.ImageURL),
	}, nil
}

type achievementService struct {
	achievementRepo repositories.AchievementRepository
	userRepo        repositories.UserRepository
}

func NewAchievementService(achievementRepo repositories.AchievementRepository, userRepo repositories.UserRepository) AchievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		userRepo:        userRepo,
	}
}

func mapAchievementError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrAchievementNotFound):
		return ErrAchievementNotFound
	case errors.Is(err, repositories.ErrAchievementConflict):
		return ErrAchievementNameConflict
	case errors.Is(err, repositories.ErrUserAchievementNotFound):
		return ErrUserAchievementNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to %s achievement: %w", op, err)
}

func (s *achievementService) CreateAchievement(ctx context.Context, input AchievementInput) (*models.Achievement, error) {
	a, err := input.toModel(0)
	if err != nil {
		return nil, err
	}
	if err := s.achievementRepo.Create(ctx, a); err != nil {
		return nil, mapAchievementError(err, "create")
	}
	return a, nil
}

func (s *achievementService) GetAchievement(ctx context.Context, id int) (*models.Achievement, error) {
	a, err := s.achievementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAchievementError(err, "get")
	}
	return a, nil
}

func (s *achievementService) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	list, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, mapAchievementError(err, "list")
	}
	return list, nil
}

func (s *achievementService) UpdateAchievement(ctx context.Context, id int, input AchievementInput) (*models.Achievement, error) {
	a, err := input.toModel(id)
	if err != nil {
		return nil, err
	}
	if err := s.achievementRepo.Update(ctx, a); err != nil {
		return nil, mapAchievementError(err, "update")
	}
	return a, nil
}

func (s *achievementService) DeleteAchievement(ctx context.Context, id int) error {
	if err := s.achievementRepo.Delete(ctx, id); err != nil {
		return mapAchievementError(err, "delete")
	}
	return nil
}

func (s *achievementService) ListUserAchievements(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	list, err := s.achievementRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, mapAchievementError(err, "list user")
	}
	return list, nil
}

func (s *achievementService) GetUserAchievement(ctx context.Context, id, userID int) (*models.UserAchievement, error) {
	ua, err := s.achievementRepo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, mapAchievementError(err, "get user")
	}
	return ua, nil
}

func (s *achievementService) GrantAchievement(ctx context.Context, userID, achievementID int) (bool, error) {
	granted, err := s.achievementRepo.Grant(ctx, userID, achievementID)
	if err != nil {
		return false, mapAchievementError(err, "grant")
	}
	if granted {
		metrics.RecordAchievementsGranted(TriggerManual, 1)
	}
	return granted, nil
}

// EvaluateUser checks every achievement against the user's completed rounds and
// returns the ones newly granted by this call.
func (s *achievementService) EvaluateUser(ctx context.Context, userID int, trigger string) ([]models.Achievement, error) {
	achievements, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	if len(achievements) == 0 {
		return nil, nil
	}

	record, err := s.achievementRepo.LoadPlayerRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player record for user %d: %w", userID, err)
	}

	var granted []models.Achievement
	for _, a := range achievements {
		if !record.Satisfies(a.Criterion) {
			continue
		}
		ok, err := s.achievementRepo.Grant(ctx, userID, a.ID)
		if err != nil {
			metrics.RecordAchievementsGranted(trigger, len(granted))
			return granted, mapAchievementError(err, "grant")
		}
		if ok {
			granted = append(granted, a)
		}
	}

	metrics.RecordAchievementsGranted(trigger, len(granted))
	if len(granted) > 0 {
		slog.InfoContext(ctx, "achievements granted",
			slog.Int("user_id", userID),
			slog.String("trigger", trigger),
			slog.Int("count", len(granted)),
		)
	}
	return granted, nil
}

func (s *achievementService) EvaluateAll(ctx context.Context, trigger string) (int, error) {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	total := 0
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		granted, err := s.EvaluateUser(ctx, id, trigger)
		total += len(granted)
		if err != nil {
			slog.ErrorContext(ctx, "achievement evaluation failed", slog.Int("user_id", id), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}
