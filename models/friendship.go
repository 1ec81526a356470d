package models

import "time"

// Friendship is one directed edge. Edges are always written and removed in symmetric pairs.
type Friendship struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	FriendID  int       `json:"friend_id" db:"friend_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	FriendUsername          string  `json:"friend_username" db:"-"`
	FriendProfilePictureKey *string `json:"-" db:"-"`
	FriendProfilePictureURL *string `json:"friend_profile_picture,omitempty" db:"-"`
}
