package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/rookieryder/golf-backend/storage"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
)

type AdminUserService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (models.UserListResponse, error)
	UpdateRole(ctx context.Context, actorID, userID int, role models.UserRole) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID int) error
}

type adminUserService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewAdminUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) AdminUserService {
	return &adminUserService{userRepo: userRepo, uploader: uploader}
}

func (s *adminUserService) ListUsers(ctx context.Context, filter models.UserFilter) (models.UserListResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Role != nil && !filter.Role.Valid() {
		return models.UserListResponse{}, newValidationError("role", "Role must be admin or player")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultUserPageSize
	}
	if filter.Limit > maxUserPageSize {
		filter.Limit = maxUserPageSize
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return models.UserListResponse{}, err
	}

	for i := range users {
		populateUserDetailsFunc(&users[i], s.uploader)
	}
	return models.UserListResponse{
		Users:      users,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateRole promotes or demotes a user. Admins cannot change their own role.
func (s *adminUserService) UpdateRole(ctx context.Context, actorID, userID int, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, newValidationError("role", "Role must be admin or player")
	}
	if actorID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", ErrForbiddenOperation)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	slog.InfoContext(ctx, "user role changed", slog.Int("actor_id", actorID), slog.Int("user_id", userID), slog.String("role", string(role)))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

// DeleteUser removes another user's account along with their profile picture.
func (s *adminUserService) DeleteUser(ctx context.Context, actorID, userID int) error {
	if actorID == userID {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbiddenOperation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	slog.InfoContext(ctx, "user deleted", slog.Int("actor_id", actorID), slog.Int("user_id", userID))

	if s.uploader != nil && user.ProfilePictureKey != nil && *user.ProfilePictureKey != "" {
		if err := s.uploader.Delete(ctx, *user.ProfilePictureKey); err != nil {
			slog.WarnContext(ctx, "failed to delete profile picture of removed user", slog.Int("user_id", userID), slog.Any("error", err))
		}
	}
	return nil
}
