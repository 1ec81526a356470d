package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipRepository_CreatePair_InsertsBothEdgesInOneTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friendships").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO friendships").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreatePair(context.Background(), 1, 2))
}

func TestFriendshipRepository_CreatePair_IdempotentWhenEdgesExist(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("ON CONFLICT").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ON CONFLICT").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.CreatePair(context.Background(), 1, 2))
}

func TestFriendshipRepository_CreatePair_UnknownFriendRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friendships").WithArgs(1, 404).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "friendships_friend_id_fkey"})
	mock.ExpectRollback()

	err := repo.CreatePair(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFriendshipRepository_DeletePair(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM friendships").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM friendships").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeletePair(context.Background(), 1, 2))
}

func TestFriendshipRepository_DeletePair_SecondDeleteFails(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM friendships").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM friendships").WithArgs(2, 1).WillReturnError(errors.New("conn reset"))
	mock.ExpectRollback()

	assert.Error(t, repo.DeletePair(context.Background(), 1, 2))
}

func TestFriendshipRepository_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresFriendshipRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM friendships f").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "friend_id", "created_at", "username", "profile_picture_key"}).
			AddRow(int64(1), int64(1), int64(2), now, "bob", "avatars/2.png").
			AddRow(int64(3), int64(1), int64(3), now, "carol", nil))

	list, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].FriendUsername)
	require.NotNil(t, list[0].FriendProfilePictureKey)
	assert.Equal(t, "avatars/2.png", *list[0].FriendProfilePictureKey)
	assert.Nil(t, list[1].FriendProfilePictureKey)
}
