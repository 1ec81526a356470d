package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository_Stats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresDashboardRepository(db)

	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM user_achievements`).WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"u", "a", "r", "c", "w", "h", "co", "g"}).
			AddRow(12, 2, 40, 31, 6, 512, 3, 17))

	stats, err := repo.Stats(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.UsersTotal)
	assert.Equal(t, 2, stats.AdminsTotal)
	assert.Equal(t, 31, stats.CompletedRounds)
	assert.Equal(t, 6, stats.RoundsLastWeek)
	assert.Equal(t, 17, stats.AchievementsGranted)
}
