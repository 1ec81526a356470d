package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rookieryder/golf-backend/models"
)

type DashboardRepository interface {
	// Stats counts rows across the platform. Rounds created at or after since count as recent.
	Stats(ctx context.Context, since time.Time) (*models.DashboardStats, error)
}

type postgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) DashboardRepository {
	return &postgresDashboardRepository{db: db}
}

func (r *postgresDashboardRepository) Stats(ctx context.Context, since time.Time) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM rounds),
			(SELECT COUNT(*) FROM rounds WHERE is_completed),
			(SELECT COUNT(*) FROM rounds WHERE created_at >= $1),
			(SELECT COUNT(*) FROM hole_scores),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM user_achievements)`

	var s models.DashboardStats
	err := r.db.QueryRowContext(ctx, query, since).Scan(
		&s.UsersTotal,
		&s.AdminsTotal,
		&s.RoundsTotal,
		&s.CompletedRounds,
		&s.RoundsLastWeek,
		&s.HoleScoresTotal,
		&s.CoursesTotal,
		&s.AchievementsGranted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return &s, nil
}
