package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/rookieryder/golf-backend/storage"
	"github.com/shopspring/decimal"
)

const (
	userSearchLimit = 10
	maxBioLength    = 500
)

var (
	minHandicap = decimal.NewFromInt(-10)
	maxHandicap = decimal.NewFromInt(54)
)

type UserService interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, currentUserID, targetUserID int, input UpdateProfileInput) (*models.User, error)
	UploadProfilePicture(ctx context.Context, currentUserID, targetUserID int, file io.Reader, contentType string) (*models.User, error)
	SearchUsers(ctx context.Context, currentUserID int, term string) ([]models.User, error)
	GetStats(ctx context.Context, userID int) (*models.UserStats, error)
}

// UpdateProfileInput holds optional profile changes; nil fields are left untouched.
type UpdateProfileInput struct {
	Username            *string              `json:"username"`
	IsPro               *bool                `json:"is_pro"`
	PreferredHandedness *string              `json:"preferred_handedness"`
	Handicap            *decimal.NullDecimal `json:"handicap"`
	Bio                 *string              `json:"bio"`
	PreferredRegion     *string              `json:"preferred_region"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	now      func() time.Time
}

// NewUserService builds the user service. uploader may be nil, which disables profile pictures.
func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
		now:      time.Now,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, currentUserID, targetUserID int, input UpdateProfileInput) (*models.User, error) {
	if currentUserID != targetUserID {
		return nil, ErrForbiddenOperation
	}

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", targetUserID, err)
	}

	v := &ValidationError{}
	if input.Username != nil {
		name := strings.TrimSpace(*input.Username)
		if name == "" {
			v.Add("username", "must not be empty")
		}
		user.Username = name
	}
	if input.IsPro != nil {
		user.IsPro = *input.IsPro
	}
	if input.PreferredHandedness != nil {
		h := strings.ToUpper(strings.TrimSpace(*input.PreferredHandedness))
		switch h {
		case "":
			user.PreferredHandedness = nil
		case "R", "L":
			user.PreferredHandedness = &h
		default:
			v.Add("preferred_handedness", "must be R or L")
		}
	}
	if input.Handicap != nil {
		hc := *input.Handicap
		if hc.Valid && (hc.Decimal.LessThan(minHandicap) || hc.Decimal.GreaterThan(maxHandicap)) {
			v.Add("handicap", "must be between -10 and 54")
		}
		if hc.Valid {
			hc.Decimal = hc.Decimal.Round(1)
		}
		user.Handicap = hc
	}
	if input.Bio != nil {
		bio := trimOptional(input.Bio)
		if bio != nil && len([]rune(*bio)) > maxBioLength {
			v.Add("bio", fmt.Sprintf("must not be more than %d characters", maxBioLength))
		}
		user.Bio = bio
	}
	if input.PreferredRegion != nil {
		user.PreferredRegion = trimOptional(input.PreferredRegion)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("failed to update user %d: %w", targetUserID, err)
	}

	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

func (s *userService) UploadProfilePicture(ctx context.Context, currentUserID, targetUserID int, file io.Reader, contentType string) (*models.User, error) {
	if currentUserID != targetUserID {
		return nil, ErrForbiddenOperation
	}
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, newValidationError("avatar", err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", targetUserID, err)
	}
	oldKey := user.ProfilePictureKey

	key := storage.ProfilePictureKey(targetUserID, ext, s.now())
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	if err := s.userRepo.UpdateProfilePictureKey(ctx, targetUserID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to clean up orphaned profile picture", slog.String("key", key), slog.Any("error", delErr))
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save profile picture key: %w", err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			slog.WarnContext(ctx, "failed to delete previous profile picture", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	user.ProfilePictureKey = &key
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

func (s *userService) SearchUsers(ctx context.Context, currentUserID int, term string) ([]models.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, newValidationError("search_term", "search_term is required")
	}

	users, err := s.userRepo.Search(ctx, term, currentUserID, userSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	for i := range users {
		populateUserDetailsFunc(&users[i], s.uploader)
	}
	return users, nil
}

func (s *userService) GetStats(ctx context.Context, userID int) (*models.UserStats, error) {
	stats, err := s.userRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for user %d: %w", userID, err)
	}
	if stats.AverageScore != nil {
		v := roundTo2(*stats.AverageScore)
		stats.AverageScore = &v
	}
	if stats.AveragePuttsPerRound != nil {
		v := roundTo2(*stats.AveragePuttsPerRound)
		stats.AveragePuttsPerRound = &v
	}
	return stats, nil
}
