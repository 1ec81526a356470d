package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateProfilePictureKey(ctx context.Context, id int, key *string) error
	Search(ctx context.Context, term string, excludeID, limit int) ([]models.User, error)
	ListIDs(ctx context.Context) ([]int, error)
	GetStats(ctx context.Context, userID int) (*models.UserStats, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	UpdateRole(ctx context.Context, id int, role models.UserRole) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, is_pro, preferred_handedness,
	handicap, bio, preferred_region, profile_picture_key, created_at`

func scanUser(s rowScanner, u *models.User) error {
	return s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsPro,
		&u.PreferredHandedness,
		&u.Handicap,
		&u.Bio,
		&u.PreferredRegion,
		&u.ProfilePictureKey,
		&u.CreatedAt,
	)
}

func mapUserWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "users_email_key"):
		return ErrUserEmailConflict
	case isUniqueViolation(err, "users_username_key"):
		return ErrUserUsernameConflict
	}
	return err
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, is_pro, preferred_handedness, handicap, bio, preferred_region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsPro,
		user.PreferredHandedness,
		user.Handicap,
		user.Bio,
		user.PreferredRegion,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

func (r *postgresUserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := scanUser(r.db.QueryRowContext(ctx, query, args...), &user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			username = $1,
			is_pro = $2,
			preferred_handedness = $3,
			handicap = $4,
			bio = $5,
			preferred_region = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.IsPro,
		user.PreferredHandedness,
		user.Handicap,
		user.Bio,
		user.PreferredRegion,
		user.ID,
	)
	if err != nil {
		return mapUserWriteError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateProfilePictureKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET profile_picture_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// Search matches usernames case-insensitively by substring, never returning excludeID.
func (r *postgresUserRepository) Search(ctx context.Context, term string, excludeID, limit int) ([]models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE '%' || $1 || '%' AND id <> $2
		ORDER BY username ASC, id ASC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, term, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresUserRepository) GetStats(ctx context.Context, userID int) (*models.UserStats, error) {
	query := `
		SELECT
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.is_completed),
			AVG(r.total_score)::float8,
			MIN(r.total_score),
			(SELECT COUNT(*) FROM hole_scores hs JOIN rounds fr ON fr.id = hs.round_id
				WHERE fr.user_id = $1 AND hs.fairway_hit),
			(SELECT AVG(p.total)::float8 FROM (
				SELECT SUM(hs.putts) AS total FROM hole_scores hs JOIN rounds pr ON pr.id = hs.round_id
				WHERE pr.user_id = $1 AND hs.putts IS NOT NULL GROUP BY hs.round_id) p)
		FROM rounds r
		WHERE r.user_id = $1`

	var (
		stats    models.UserStats
		avgScore sql.NullFloat64
		best     sql.NullInt64
		avgPutts sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.RoundsPlayed,
		&stats.CompletedRounds,
		&avgScore,
		&best,
		&stats.FairwaysHit,
		&avgPutts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	if avgScore.Valid {
		stats.AverageScore = &avgScore.Float64
	}
	if best.Valid {
		b := int(best.Int64)
		stats.BestScore = &b
	}
	if avgPutts.Valid {
		stats.AveragePuttsPerRound = &avgPutts.Float64
	}
	return &stats, nil
}

// List returns one page of users matching filter together with the total match count.
func (r *postgresUserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var (
		conditions []string
		args       []interface{}
	)
	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := addArg(filter.Search)
		conditions = append(conditions, fmt.Sprintf("(username ILIKE '%%' || %[1]s || '%%' OR email ILIKE '%%' || %[1]s || '%%')", p))
	}
	if filter.Role != nil {
		conditions = append(conditions, "role = "+addArg(string(*filter.Role)))
	}

	query := `SELECT ` + userColumns + `, COUNT(*) OVER() FROM users`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC LIMIT " + addArg(filter.Limit) + " OFFSET " + addArg((filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	total := 0
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsPro,
			&u.PreferredHandedness, &u.Handicap, &u.Bio, &u.PreferredRegion,
			&u.ProfilePictureKey, &u.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, total, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id int, role models.UserRole) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// Delete removes the user. Rounds, clubs, friendships and achievements go with it (ON DELETE CASCADE).
func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
