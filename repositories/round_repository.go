package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrRoundNotFound      = errors.New("round not found")
	ErrRoundCourseInvalid = errors.New("round course invalid")
)

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id, userID int) (*models.Round, error)
	ListByUser(ctx context.Context, userID int) ([]models.Round, error)
	Update(ctx context.Context, round *models.Round) error
	Delete(ctx context.Context, id, userID int) error
	ComputeTotalScore(ctx context.Context, id, userID int) (total *int, completed bool, err error)
	EnsureShareToken(ctx context.Context, id, userID int, candidate uuid.UUID) (uuid.UUID, error)
	GetSharedSummary(ctx context.Context, token uuid.UUID) (*models.SharedRoundSummary, error)
	GetSharedSummaryByID(ctx context.Context, id int) (*models.SharedRoundSummary, error)
	ListRecentHoleResults(ctx context.Context, userID, rounds int) ([]models.HoleResult, error)
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

const roundColumns = `id, user_id, course_id, date, total_score, is_completed, shareable_token, created_at`

func scanRound(s rowScanner, rd *models.Round) error {
	return s.Scan(
		&rd.ID,
		&rd.UserID,
		&rd.CourseID,
		&rd.Date,
		&rd.TotalScore,
		&rd.IsCompleted,
		&rd.ShareableToken,
		&rd.CreatedAt,
	)
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (user_id, course_id, date, is_completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		round.UserID, round.CourseID, round.Date, round.IsCompleted,
	).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "rounds_course_id_fkey") {
			return ErrRoundCourseInvalid
		}
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id, userID int) (*models.Round, error) {
	var rd models.Round
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE id = $1 AND user_id = $2`
	if err := scanRound(r.db.QueryRowContext(ctx, query, id, userID), &rd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	return &rd, nil
}

func (r *postgresRoundRepository) ListByUser(ctx context.Context, userID int) ([]models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var rd models.Round
		if err := scanRound(rows, &rd); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}
	return rounds, nil
}

// Update changes course, date and completion of a round owned by round.UserID.
func (r *postgresRoundRepository) Update(ctx context.Context, round *models.Round) error {
	query := `
		UPDATE rounds SET course_id = $1, date = $2, is_completed = $3
		WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		round.CourseID, round.Date, round.IsCompleted, round.ID, round.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err, "rounds_course_id_fkey") {
			return ErrRoundCourseInvalid
		}
		return fmt.Errorf("failed to update round %d: %w", round.ID, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

// ComputeTotalScore stores SUM(score) of the round's hole scores in a single statement.
// The sum of no hole scores is NULL and is returned as a nil total.
func (r *postgresRoundRepository) ComputeTotalScore(ctx context.Context, id, userID int) (*int, bool, error) {
	query := `
		UPDATE rounds r
		SET total_score = (SELECT SUM(hs.score) FROM hole_scores hs WHERE hs.round_id = r.id)
		WHERE r.id = $1 AND r.user_id = $2
		RETURNING r.total_score, r.is_completed`

	var (
		total     sql.NullInt64
		completed bool
	)
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&total, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrRoundNotFound
		}
		return nil, false, fmt.Errorf("failed to compute total score for round %d: %w", id, err)
	}
	if !total.Valid {
		return nil, completed, nil
	}
	t := int(total.Int64)
	return &t, completed, nil
}

// EnsureShareToken sets the round's token to candidate unless it already has one, returning the stored token.
func (r *postgresRoundRepository) EnsureShareToken(ctx context.Context, id, userID int, candidate uuid.UUID) (uuid.UUID, error) {
	query := `
		UPDATE rounds SET shareable_token = COALESCE(shareable_token, $3)
		WHERE id = $1 AND user_id = $2
		RETURNING shareable_token`

	var token uuid.UUID
	if err := r.db.QueryRowContext(ctx, query, id, userID, candidate).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrRoundNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to share round %d: %w", id, err)
	}
	return token, nil
}

const sharedSummaryQuery = `
	SELECT r.id, c.name, u.username, r.date, r.total_score, r.shareable_token
	FROM rounds r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN courses c ON c.id = r.course_id
	WHERE `

func (r *postgresRoundRepository) findSummary(ctx context.Context, where string, arg interface{}) (*models.SharedRoundSummary, error) {
	var s models.SharedRoundSummary
	err := r.db.QueryRowContext(ctx, sharedSummaryQuery+where, arg).Scan(
		&s.ID, &s.CourseName, &s.Username, &s.Date, &s.TotalScore, &s.ShareableLink,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to load shared round: %w", err)
	}
	return &s, nil
}

func (r *postgresRoundRepository) GetSharedSummary(ctx context.Context, token uuid.UUID) (*models.SharedRoundSummary, error) {
	return r.findSummary(ctx, `r.shareable_token = $1`, token)
}

// GetSharedSummaryByID returns ErrRoundNotFound for rounds that have not been shared.
func (r *postgresRoundRepository) GetSharedSummaryByID(ctx context.Context, id int) (*models.SharedRoundSummary, error) {
	return r.findSummary(ctx, `r.id = $1 AND r.shareable_token IS NOT NULL`, id)
}

// ListRecentHoleResults returns hole scores of the user's most recently created completed rounds,
// each joined with the par of the same hole on the round's course.
func (r *postgresRoundRepository) ListRecentHoleResults(ctx context.Context, userID, rounds int) ([]models.HoleResult, error) {
	query := `
		WITH recent AS (
			SELECT id, course_id, created_at
			FROM rounds
			WHERE user_id = $1 AND is_completed
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
		SELECT rc.id, rc.course_id, hs.hole_number, hs.score, h.par
		FROM recent rc
		LEFT JOIN hole_scores hs ON hs.round_id = rc.id
		LEFT JOIN holes h ON h.course_id = rc.course_id AND h.hole_number = hs.hole_number
		ORDER BY rc.created_at DESC, rc.id DESC, hs.hole_number ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent hole results: %w", err)
	}
	defer rows.Close()

	var results []models.HoleResult
	for rows.Next() {
		var hr models.HoleResult
		if err := rows.Scan(&hr.RoundID, &hr.CourseID, &hr.HoleNumber, &hr.Score, &hr.Par); err != nil {
			return nil, fmt.Errorf("failed to scan hole result: %w", err)
		}
		results = append(results, hr)
	}
	return results, rows.Err()
}
