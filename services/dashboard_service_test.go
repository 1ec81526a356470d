package services

import (
	"context"
	"testing"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	since time.Time
}

func (f *fakeDashboardRepo) Stats(_ context.Context, since time.Time) (*models.DashboardStats, error) {
	f.since = since
	return &models.DashboardStats{UsersTotal: 3}, nil
}

func TestDashboardService_UsesSevenDayWindow(t *testing.T) {
	repo := &fakeDashboardRepo{}
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := &dashboardService{dashboardRepo: repo, now: func() time.Time { return now }}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.UsersTotal)
	assert.Equal(t, time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), repo.since)
}
