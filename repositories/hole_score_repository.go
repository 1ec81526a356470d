package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrHoleScoreNotFound = errors.New("hole score not found")
	ErrHoleScoreConflict = errors.New("hole score already recorded for this hole")
)

// HoleScoreRepository scopes every read and write to rounds owned by userID.
type HoleScoreRepository interface {
	Create(ctx context.Context, hs *models.HoleScore) error
	GetByID(ctx context.Context, id, userID int) (*models.HoleScore, error)
	ListByUser(ctx context.Context, userID int, roundID *int) ([]models.HoleScore, error)
	Update(ctx context.Context, hs *models.HoleScore, userID int) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresHoleScoreRepository struct {
	db *sql.DB
}

func NewPostgresHoleScoreRepository(db *sql.DB) HoleScoreRepository {
	return &postgresHoleScoreRepository{db: db}
}

const holeScoreColumns = `hs.id, hs.round_id, hs.hole_number, hs.score, hs.putts, hs.fairway_hit, hs.sand_save, hs.created_at, hs.updated_at`

func scanHoleScore(s rowScanner, hs *models.HoleScore) error {
	return s.Scan(
		&hs.ID,
		&hs.RoundID,
		&hs.HoleNumber,
		&hs.Score,
		&hs.Putts,
		&hs.FairwayHit,
		&hs.SandSave,
		&hs.CreatedAt,
		&hs.UpdatedAt,
	)
}

// Create inserts a hole score. The caller has already verified round ownership.
func (r *postgresHoleScoreRepository) Create(ctx context.Context, hs *models.HoleScore) error {
	query := `
		INSERT INTO hole_scores (round_id, hole_number, score, putts, fairway_hit, sand_save)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		hs.RoundID, hs.HoleNumber, hs.Score, hs.Putts, hs.FairwayHit, hs.SandSave,
	).Scan(&hs.ID, &hs.CreatedAt, &hs.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "hole_scores_round_hole_number_key"):
			return ErrHoleScoreConflict
		case isForeignKeyViolation(err, "hole_scores_round_id_fkey"):
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to create hole score: %w", err)
	}
	return nil
}

func (r *postgresHoleScoreRepository) GetByID(ctx context.Context, id, userID int) (*models.HoleScore, error) {
	query := `SELECT ` + holeScoreColumns + `
		FROM hole_scores hs
		JOIN rounds r ON r.id = hs.round_id
		WHERE hs.id = $1 AND r.user_id = $2`

	var hs models.HoleScore
	if err := scanHoleScore(r.db.QueryRowContext(ctx, query, id, userID), &hs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHoleScoreNotFound
		}
		return nil, fmt.Errorf("failed to get hole score %d: %w", id, err)
	}
	return &hs, nil
}

func (r *postgresHoleScoreRepository) ListByUser(ctx context.Context, userID int, roundID *int) ([]models.HoleScore, error) {
	query := `SELECT ` + holeScoreColumns + `
		FROM hole_scores hs
		JOIN rounds r ON r.id = hs.round_id
		WHERE r.user_id = $1`
	args := []interface{}{userID}
	if roundID != nil {
		query += ` AND hs.round_id = $2`
		args = append(args, *roundID)
	}
	query += ` ORDER BY hs.round_id ASC, hs.hole_number ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hole scores: %w", err)
	}
	defer rows.Close()

	scores := make([]models.HoleScore, 0)
	for rows.Next() {
		var hs models.HoleScore
		if err := scanHoleScore(rows, &hs); err != nil {
			return nil, fmt.Errorf("failed to scan hole score: %w", err)
		}
		scores = append(scores, hs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hole score rows: %w", err)
	}
	return scores, nil
}

// Update rewrites the stroke fields. Hole number and round are fixed after creation.
func (r *postgresHoleScoreRepository) Update(ctx context.Context, hs *models.HoleScore, userID int) error {
	query := `
		UPDATE hole_scores hs
		SET score = $1, putts = $2, fairway_hit = $3, sand_save = $4, updated_at = NOW()
		FROM rounds r
		WHERE hs.id = $5 AND r.id = hs.round_id AND r.user_id = $6
		RETURNING hs.round_id, hs.hole_number, hs.created_at, hs.updated_at`

	err := r.db.QueryRowContext(ctx, query,
		hs.Score, hs.Putts, hs.FairwayHit, hs.SandSave, hs.ID, userID,
	).Scan(&hs.RoundID, &hs.HoleNumber, &hs.CreatedAt, &hs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHoleScoreNotFound
		}
		return fmt.Errorf("failed to update hole score %d: %w", hs.ID, err)
	}
	return nil
}

func (r *postgresHoleScoreRepository) Delete(ctx context.Context, id, userID int) error {
	query := `
		DELETE FROM hole_scores hs
		USING rounds r
		WHERE hs.id = $1 AND r.id = hs.round_id AND r.user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete hole score %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrHoleScoreNotFound)
}
