package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rookieryder/golf-backend/models"
	"github.com/shopspring/decimal"
)

// LeaderboardRow is an unranked aggregate for one user.
type LeaderboardRow struct {
	UserID   int
	Username string
	Value    decimal.Decimal
}

type LeaderboardRepository interface {
	// Top returns at most limit rows ordered best first, ties broken by user id ascending.
	// since only applies to the recent-total metric.
	Top(ctx context.Context, metric models.LeaderboardMetric, since time.Time, limit int) ([]LeaderboardRow, error)
}

type postgresLeaderboardRepository struct {
	db *sql.DB
}

func NewPostgresLeaderboardRepository(db *sql.DB) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

const (
	recentTotalQuery = `
		SELECT u.id, u.username, SUM(r.total_score) AS value
		FROM users u
		JOIN rounds r ON r.user_id = u.id
		WHERE r.is_completed AND r.created_at >= $1
		GROUP BY u.id, u.username
		HAVING SUM(r.total_score) IS NOT NULL
		ORDER BY value ASC, u.id ASC
		LIMIT $2`

	averageScoreQuery = `
		SELECT u.id, u.username, AVG(r.total_score) AS value
		FROM users u
		JOIN rounds r ON r.user_id = u.id
		WHERE r.total_score IS NOT NULL
		GROUP BY u.id, u.username
		ORDER BY value ASC, u.id ASC
		LIMIT $1`

	totalRoundsQuery = `
		SELECT u.id, u.username, COUNT(r.id) AS value
		FROM users u
		JOIN rounds r ON r.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY value DESC, u.id ASC
		LIMIT $1`
)

func (r *postgresLeaderboardRepository) Top(ctx context.Context, metric models.LeaderboardMetric, since time.Time, limit int) ([]LeaderboardRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch metric {
	case models.MetricRecentTotal:
		rows, err = r.db.QueryContext(ctx, recentTotalQuery, since, limit)
	case models.MetricAverageScore:
		rows, err = r.db.QueryContext(ctx, averageScoreQuery, limit)
	case models.MetricTotalRounds:
		rows, err = r.db.QueryContext(ctx, totalRoundsQuery, limit)
	default:
		return nil, fmt.Errorf("unsupported leaderboard metric %q", metric)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s leaderboard: %w", metric, err)
	}
	defer rows.Close()

	result := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.Value); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}
	return result, nil
}
