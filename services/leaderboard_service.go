package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
)

const (
	leaderboardSize   = 10
	recentTotalWindow = 7 * 24 * time.Hour
)

type LeaderboardService interface {
	// GetLeaderboard ranks players by metric. An empty metric means average_score.
	GetLeaderboard(ctx context.Context, metric string) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	leaderboardRepo repositories.LeaderboardRepository
	now             func() time.Time
}

func NewLeaderboardService(leaderboardRepo repositories.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		now:             time.Now,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, metric string) ([]models.LeaderboardEntry, error) {
	m := models.MetricAverageScore
	if metric = strings.TrimSpace(metric); metric != "" {
		m = models.LeaderboardMetric(metric)
	}
	if !m.Valid() {
		return nil, newValidationError("metric", "Invalid metric")
	}

	since := s.now().Add(-recentTotalWindow)
	rows, err := s.leaderboardRepo.Top(ctx, m, since, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s leaderboard: %w", m, err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		value := row.Value
		if m == models.MetricAverageScore {
			value = value.Round(2)
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   row.UserID,
			Username: row.Username,
			Metric:   m,
			Value:    value.InexactFloat64(),
		})
	}
	return entries, nil
}
