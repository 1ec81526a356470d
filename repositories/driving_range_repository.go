package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrDrivingRangeNotFound = errors.New("driving range not found")
	ErrDrivingRangeConflict = errors.New("driving range name conflict")
)

type DrivingRangeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, dr *models.DrivingRange) error
	GetByID(ctx context.Context, id int) (*models.DrivingRange, error)
	List(ctx context.Context) ([]models.DrivingRange, error)
	Update(ctx context.Context, dr *models.DrivingRange) error
	Delete(ctx context.Context, id int) error
	InsertIfMissing(ctx context.Context, exec SQLExecutor, dr *models.DrivingRange) (bool, error)
}

type postgresDrivingRangeRepository struct {
	db *sql.DB
}

func NewPostgresDrivingRangeRepository(db *sql.DB) DrivingRangeRepository {
	return &postgresDrivingRangeRepository{db: db}
}

func (r *postgresDrivingRangeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const drivingRangeColumns = `id, name, address, city, state, latitude, longitude, phone_number, website`

func scanDrivingRange(s rowScanner, dr *models.DrivingRange) error {
	return s.Scan(
		&dr.ID,
		&dr.Name,
		&dr.Address,
		&dr.City,
		&dr.State,
		&dr.Latitude,
		&dr.Longitude,
		&dr.PhoneNumber,
		&dr.Website,
	)
}

func (r *postgresDrivingRangeRepository) Create(ctx context.Context, exec SQLExecutor, dr *models.DrivingRange) error {
	query := `
		INSERT INTO driving_ranges (name, address, city, state, latitude, longitude, phone_number, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		dr.Name, dr.Address, dr.City, dr.State, dr.Latitude, dr.Longitude, dr.PhoneNumber, dr.Website,
	).Scan(&dr.ID)
	if err != nil {
		if isUniqueViolation(err, "driving_ranges_name_key") {
			return ErrDrivingRangeConflict
		}
		return fmt.Errorf("failed to create driving range: %w", err)
	}
	return nil
}

// InsertIfMissing inserts dr unless a range with the same name exists, reporting whether it inserted.
func (r *postgresDrivingRangeRepository) InsertIfMissing(ctx context.Context, exec SQLExecutor, dr *models.DrivingRange) (bool, error) {
	query := `
		INSERT INTO driving_ranges (name, address, city, state, latitude, longitude, phone_number, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO NOTHING`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		dr.Name, dr.Address, dr.City, dr.State, dr.Latitude, dr.Longitude, dr.PhoneNumber, dr.Website,
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed driving range %q: %w", dr.Name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresDrivingRangeRepository) GetByID(ctx context.Context, id int) (*models.DrivingRange, error) {
	var dr models.DrivingRange
	query := `SELECT ` + drivingRangeColumns + ` FROM driving_ranges WHERE id = $1`
	if err := scanDrivingRange(r.db.QueryRowContext(ctx, query, id), &dr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDrivingRangeNotFound
		}
		return nil, fmt.Errorf("failed to get driving range %d: %w", id, err)
	}
	return &dr, nil
}

func (r *postgresDrivingRangeRepository) List(ctx context.Context) ([]models.DrivingRange, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+drivingRangeColumns+` FROM driving_ranges ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list driving ranges: %w", err)
	}
	defer rows.Close()

	ranges := make([]models.DrivingRange, 0)
	for rows.Next() {
		var dr models.DrivingRange
		if err := scanDrivingRange(rows, &dr); err != nil {
			return nil, fmt.Errorf("failed to scan driving range: %w", err)
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

func (r *postgresDrivingRangeRepository) Update(ctx context.Context, dr *models.DrivingRange) error {
	query := `
		UPDATE driving_ranges SET
			name = $1, address = $2, city = $3, state = $4,
			latitude = $5, longitude = $6, phone_number = $7, website = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		dr.Name, dr.Address, dr.City, dr.State, dr.Latitude, dr.Longitude, dr.PhoneNumber, dr.Website, dr.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "driving_ranges_name_key") {
			return ErrDrivingRangeConflict
		}
		return fmt.Errorf("failed to update driving range %d: %w", dr.ID, err)
	}
	return checkAffectedRows(result, ErrDrivingRangeNotFound)
}

func (r *postgresDrivingRangeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM driving_ranges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete driving range %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrDrivingRangeNotFound)
}
