package services

import (
	"context"
	"testing"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaderboardRepo struct {
	rows   []repositories.LeaderboardRow
	metric models.LeaderboardMetric
	since  time.Time
	limit  int
}

func (f *fakeLeaderboardRepo) Top(_ context.Context, metric models.LeaderboardMetric, since time.Time, limit int) ([]repositories.LeaderboardRow, error) {
	f.metric, f.since, f.limit = metric, since, limit
	return f.rows, nil
}

func TestGetLeaderboard_DefaultsToAverageAndRounds(t *testing.T) {
	repo := &fakeLeaderboardRepo{rows: []repositories.LeaderboardRow{
		{UserID: 3, Username: "c", Value: decimal.RequireFromString("72.3333333")},
		{UserID: 1, Username: "a", Value: decimal.RequireFromString("80.005")},
	}}
	now := time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC)
	svc := NewLeaderboardService(repo).(*leaderboardService)
	svc.now = func() time.Time { return now }

	entries, err := svc.GetLeaderboard(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, models.MetricAverageScore, repo.metric)
	assert.Equal(t, 10, repo.limit)
	assert.Equal(t, now.Add(-7*24*time.Hour), repo.since)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[0].UserID)
	assert.Equal(t, 72.33, entries[0].Value)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 80.01, entries[1].Value)
}

func TestGetLeaderboard_CountIsNotRounded(t *testing.T) {
	repo := &fakeLeaderboardRepo{rows: []repositories.LeaderboardRow{
		{UserID: 2, Username: "b", Value: decimal.NewFromInt(12)},
	}}
	entries, err := NewLeaderboardService(repo).GetLeaderboard(context.Background(), "total_rounds")
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, models.MetricTotalRounds, entries[0].Metric)
	assert.Equal(t, float64(12), entries[0].Value)
}

func TestGetLeaderboard_EmptyIsEmptySlice(t *testing.T) {
	entries, err := NewLeaderboardService(&fakeLeaderboardRepo{}).GetLeaderboard(context.Background(), "recent_total")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGetLeaderboard_InvalidMetric(t *testing.T) {
	_, err := NewLeaderboardService(&fakeLeaderboardRepo{}).GetLeaderboard(context.Background(), "handicap")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
