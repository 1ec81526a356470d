package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrPracticeTipNotFound = errors.New("practice tip not found")
	ErrPracticeTipConflict = errors.New("practice tip title conflict")
)

type PracticeTipRepository interface {
	Create(ctx context.Context, tip *models.PracticeTip) error
	GetByID(ctx context.Context, id int) (*models.PracticeTip, error)
	List(ctx context.Context, category *models.PracticeCategory) ([]models.PracticeTip, error)
	Update(ctx context.Context, tip *models.PracticeTip) error
	Delete(ctx context.Context, id int) error
	InsertIfMissing(ctx context.Context, exec SQLExecutor, tip *models.PracticeTip) (bool, error)
}

type postgresPracticeTipRepository struct {
	db *sql.DB
}

func NewPostgresPracticeTipRepository(db *sql.DB) PracticeTipRepository {
	return &postgresPracticeTipRepository{db: db}
}

const practiceTipColumns = `id, title, description, youtube_link, category, difficulty_level, created_at, updated_at`

func scanPracticeTip(s rowScanner, p *models.PracticeTip) error {
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.YoutubeLink,
		&p.Category,
		&p.DifficultyLevel,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == nil {
		p.FillDisplay()
	}
	return err
}

func (r *postgresPracticeTipRepository) Create(ctx context.Context, tip *models.PracticeTip) error {
	query := `
		INSERT INTO practice_tips (title, description, youtube_link, category, difficulty_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tip.Title, tip.Description, tip.YoutubeLink, tip.Category, tip.DifficultyLevel,
	).Scan(&tip.ID, &tip.CreatedAt, &tip.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "practice_tips_title_key") {
			return ErrPracticeTipConflict
		}
		return fmt.Errorf("failed to create practice tip: %w", err)
	}
	tip.FillDisplay()
	return nil
}

func (r *postgresPracticeTipRepository) InsertIfMissing(ctx context.Context, exec SQLExecutor, tip *models.PracticeTip) (bool, error) {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO practice_tips (title, description, youtube_link, category, difficulty_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (title) DO NOTHING`

	result, err := exec.ExecContext(ctx, query,
		tip.Title, tip.Description, tip.YoutubeLink, tip.Category, tip.DifficultyLevel,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed practice tip %q: %w", tip.Title, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresPracticeTipRepository) GetByID(ctx context.Context, id int) (*models.PracticeTip, error) {
	var p models.PracticeTip
	query := `SELECT ` + practiceTipColumns + ` FROM practice_tips WHERE id = $1`
	if err := scanPracticeTip(r.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPracticeTipNotFound
		}
		return nil, fmt.Errorf("failed to get practice tip %d: %w", id, err)
	}
	return &p, nil
}

func (r *postgresPracticeTipRepository) List(ctx context.Context, category *models.PracticeCategory) ([]models.PracticeTip, error) {
	query := `SELECT ` + practiceTipColumns + ` FROM practice_tips`
	var args []interface{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY difficulty_level ASC, title ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice tips: %w", err)
	}
	defer rows.Close()

	tips := make([]models.PracticeTip, 0)
	for rows.Next() {
		var p models.PracticeTip
		if err := scanPracticeTip(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan practice tip: %w", err)
		}
		tips = append(tips, p)
	}
	return tips, rows.Err()
}

func (r *postgresPracticeTipRepository) Update(ctx context.Context, tip *models.PracticeTip) error {
	query := `
		UPDATE practice_tips SET
			title = $1, description = $2, youtube_link = $3, category = $4, difficulty_level = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tip.Title, tip.Description, tip.YoutubeLink, tip.Category, tip.DifficultyLevel, tip.ID,
	).Scan(&tip.CreatedAt, &tip.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPracticeTipNotFound
		}
		if isUniqueViolation(err, "practice_tips_title_key") {
			return ErrPracticeTipConflict
		}
		return fmt.Errorf("failed to update practice tip %d: %w", tip.ID, err)
	}
	tip.FillDisplay()
	return nil
}

func (r *postgresPracticeTipRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM practice_tips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete practice tip %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPracticeTipNotFound)
}
