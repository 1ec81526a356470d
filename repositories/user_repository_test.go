package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rookieryder/golf-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "username", "email", "password_hash", "role", "is_pro",
	"preferred_handedness", "handicap", "bio", "preferred_region", "profile_picture_key", "created_at"}

func TestUserRepository_Create_Conflicts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	u := &models.User{Username: "alice", Email: "a@example.com", Role: models.RolePlayer}
	assert.ErrorIs(t, repo.Create(context.Background(), u), ErrUserUsernameConflict)
	assert.ErrorIs(t, repo.Create(context.Background(), u), ErrUserEmailConflict)
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice", "a@example.com", "hash", "player", false, "R", "12.4", nil, nil, nil, time.Now()))

	u, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.Handicap.Valid)
	assert.Equal(t, "12.4", u.Handicap.Decimal.String())
	require.NotNil(t, u.PreferredHandedness)
	assert.Equal(t, "R", *u.PreferredHandedness)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("FROM users").WithArgs(9).WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("username ILIKE").
		WithArgs("ali", 1, 10).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(2), "alina", "b@example.com", "hash", "player", false, nil, nil, nil, nil, nil, time.Now()))

	users, err := repo.Search(context.Background(), "ali", 1, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alina", users[0].Username)
	assert.False(t, users[0].Handicap.Valid)
}

func TestUserRepository_GetStats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("FROM rounds r WHERE r.user_id = \\$1").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"rounds", "completed", "avg", "best", "fairways", "putts"}).
			AddRow(int64(4), int64(3), 86.5, int64(82), int64(21), 31.25))

	stats, err := repo.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.RoundsPlayed)
	assert.Equal(t, 3, stats.CompletedRounds)
	require.NotNil(t, stats.BestScore)
	assert.Equal(t, 82, *stats.BestScore)
	require.NotNil(t, stats.AverageScore)
	assert.InDelta(t, 86.5, *stats.AverageScore, 0.001)
	assert.Equal(t, 21, stats.FairwaysHit)
}

func TestUserRepository_List_FiltersAndPages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	role := models.RoleAdmin
	cols := append(append([]string{}, userRowColumns...), "count")
	mock.ExpectQuery(`FROM users WHERE \(username ILIKE .* AND role = \$2 ORDER BY id ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("ali", "admin", 10, 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(3), "alice", "a@example.com", "hash", "admin", true, nil, nil, nil, nil, nil, time.Now(), int64(11)))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "ali", Role: &role, Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

func TestUserRepository_List_EmptyPageHasZeroTotal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	cols := append(append([]string{}, userRowColumns...), "count")
	mock.ExpectQuery(`FROM users ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(cols))

	users, total, err := repo.List(context.Background(), models.UserFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
	assert.Zero(t, total)
}

func TestUserRepository_UpdateRoleAndDelete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).WithArgs("admin", 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, repo.UpdateRole(context.Background(), 5, models.RoleAdmin), ErrUserNotFound)
	assert.NoError(t, repo.Delete(context.Background(), 5))
}
