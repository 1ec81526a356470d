package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/rookieryder/golf-backend/storage"
)

type FriendshipService interface {
	AddFriend(ctx context.Context, userID int, friendID *int) error
	RemoveFriend(ctx context.Context, userID int, friendID *int) error
	ListFriends(ctx context.Context, userID int) ([]models.Friendship, error)
}

type friendshipService struct {
	friendshipRepo repositories.FriendshipRepository
	uploader       storage.FileUploader
}

func NewFriendshipService(friendshipRepo repositories.FriendshipRepository, uploader storage.FileUploader) FriendshipService {
	return &friendshipService{
		friendshipRepo: friendshipRepo,
		uploader:       uploader,
	}
}

func validateFriendID(userID int, friendID *int) (int, error) {
	if friendID == nil || *friendID <= 0 {
		return 0, newValidationError("friend_id", "Friend ID is required")
	}
	if *friendID == userID {
		return 0, newValidationError("friend_id", "You cannot befriend yourself")
	}
	return *friendID, nil
}

// AddFriend creates both directions of the friendship. Adding an existing friend is a no-op.
func (s *friendshipService) AddFriend(ctx context.Context, userID int, friendID *int) error {
	fid, err := validateFriendID(userID, friendID)
	if err != nil {
		return err
	}
	if err := s.friendshipRepo.CreatePair(ctx, userID, fid); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create friendship %d<->%d: %w", userID, fid, err)
	}
	return nil
}

func (s *friendshipService) RemoveFriend(ctx context.Context, userID int, friendID *int) error {
	fid, err := validateFriendID(userID, friendID)
	if err != nil {
		return err
	}
	if err := s.friendshipRepo.DeletePair(ctx, userID, fid); err != nil {
		return fmt.Errorf("failed to remove friendship %d<->%d: %w", userID, fid, err)
	}
	return nil
}

func (s *friendshipService) ListFriends(ctx context.Context, userID int) ([]models.Friendship, error) {
	friends, err := s.friendshipRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	for i := range friends {
		populateFriendPictureURLFunc(&friends[i], s.uploader)
	}
	return friends, nil
}
