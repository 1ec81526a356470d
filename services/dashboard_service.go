package services

import (
	"context"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

const dashboardRecentWindow = 7 * 24 * time.Hour

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	now           func() time.Time
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, now: time.Now}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	return s.dashboardRepo.Stats(ctx, s.now().Add(-dashboardRecentWindow))
}
