package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

var ErrClubNotFound = errors.New("club not found")

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id, userID int) (*models.Club, error)
	ListByUser(ctx context.Context, userID int) ([]models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func scanClub(s rowScanner, c *models.Club) error {
	return s.Scan(&c.ID, &c.UserID, &c.ClubType, &c.AverageDistanceYards, &c.Notes)
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (user_id, club_type, average_distance_yards, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		club.UserID, club.ClubType, club.AverageDistanceYards, club.Notes,
	).Scan(&club.ID)
	if err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id, userID int) (*models.Club, error) {
	query := `
		SELECT id, user_id, club_type, average_distance_yards, notes
		FROM clubs
		WHERE id = $1 AND user_id = $2`

	var c models.Club
	if err := scanClub(r.db.QueryRowContext(ctx, query, id, userID), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", id, err)
	}
	return &c, nil
}

func (r *postgresClubRepository) ListByUser(ctx context.Context, userID int) ([]models.Club, error) {
	query := `
		SELECT id, user_id, club_type, average_distance_yards, notes
		FROM clubs
		WHERE user_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	clubs := make([]models.Club, 0)
	for rows.Next() {
		var c models.Club
		if err := scanClub(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (r *postgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs SET club_type = $1, average_distance_yards = $2, notes = $3
		WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		club.ClubType, club.AverageDistanceYards, club.Notes, club.ID, club.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update club %d: %w", club.ID, err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) Delete(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete club %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}
