package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

var (
	ErrAchievementNotFound     = errors.New("achievement not found")
	ErrAchievementConflict     = errors.New("achievement name conflict")
	ErrUserAchievementNotFound = errors.New("user achievement not found")
)

type AchievementRepository interface {
	Create(ctx context.Context, a *models.Achievement) error
	GetByID(ctx context.Context, id int) (*models.Achievement, error)
	List(ctx context.Context) ([]models.Achievement, error)
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id int) error
	InsertIfMissing(ctx context.Context, exec SQLExecutor, a *models.Achievement) (bool, error)

	ListForUser(ctx context.Context, userID int) ([]models.UserAchievement, error)
	GetForUser(ctx context.Context, id, userID int) (*models.UserAchievement, error)
	// Grant records the achievement for the user once. It reports false when it was already held.
	Grant(ctx context.Context, userID, achievementID int) (bool, error)
	LoadPlayerRecord(ctx context.Context, userID int) (*models.PlayerRecord, error)
}

type postgresAchievementRepository struct {
	db *sql.DB
}

func NewPostgresAchievementRepository(db *sql.DB) AchievementRepository {
	return &postgresAchievementRepository{db: db}
}

const achievementColumns = `id, name, description, criterion, image_url, created_at, updated_at`

func scanAchievement(s rowScanner, a *models.Achievement) error {
	return s.Scan(&a.ID, &a.Name, &a.Description, &a.Criterion, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt)
}

func (r *postgresAchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	query := `
		INSERT INTO achievements (name, description, criterion, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Description, a.Criterion, a.ImageURL).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "achievements_name_key") {
			return ErrAchievementConflict
		}
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	return nil
}

func (r *postgresAchievementRepository) InsertIfMissing(ctx context.Context, exec SQLExecutor, a *models.Achievement) (bool, error) {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO achievements (name, description, criterion, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	result, err := exec.ExecContext(ctx, query, a.Name, a.Description, a.Criterion, a.ImageURL)
	if err != nil {
		return false, fmt.Errorf("failed to seed achievement %q: %w", a.Name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresAchievementRepository) GetByID(ctx context.Context, id int) (*models.Achievement, error) {
	var a models.Achievement
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1`
	if err := scanAchievement(r.db.QueryRowContext(ctx, query, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to get achievement %d: %w", id, err)
	}
	return &a, nil
}

func (r *postgresAchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+achievementColumns+` FROM achievements ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	list := make([]models.Achievement, 0)
	for rows.Next() {
		var a models.Achievement
		if err := scanAchievement(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *postgresAchievementRepository) Update(ctx context.Context, a *models.Achievement) error {
	query := `
		UPDATE achievements SET name = $1, description = $2, criterion = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Description, a.Criterion, a.ImageURL, a.ID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAchievementNotFound
		}
		if isUniqueViolation(err, "achievements_name_key") {
			return ErrAchievementConflict
		}
		return fmt.Errorf("failed to update achievement %d: %w", a.ID, err)
	}
	return nil
}

func (r *postgresAchievementRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete achievement %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrAchievementNotFound)
}

const userAchievementQuery = `
	SELECT ua.id, ua.user_id, ua.date_achieved,
		a.id, a.name, a.description, a.criterion, a.image_url, a.created_at, a.updated_at
	FROM user_achievements ua
	JOIN achievements a ON a.id = ua.achievement_id
	WHERE ua.user_id = $1`

func scanUserAchievement(s rowScanner, ua *models.UserAchievement) error {
	a := &ua.Achievement
	return s.Scan(
		&ua.ID, &ua.UserID, &ua.DateAchieved,
		&a.ID, &a.Name, &a.Description, &a.Criterion, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *postgresAchievementRepository) ListForUser(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	rows, err := r.db.QueryContext(ctx, userAchievementQuery+` ORDER BY ua.date_achieved DESC, ua.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}
	defer rows.Close()

	list := make([]models.UserAchievement, 0)
	for rows.Next() {
		var ua models.UserAchievement
		if err := scanUserAchievement(rows, &ua); err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		list = append(list, ua)
	}
	return list, rows.Err()
}

func (r *postgresAchievementRepository) GetForUser(ctx context.Context, id, userID int) (*models.UserAchievement, error) {
	var ua models.UserAchievement
	if err := scanUserAchievement(r.db.QueryRowContext(ctx, userAchievementQuery+` AND ua.id = $2`, userID, id), &ua); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserAchievementNotFound
		}
		return nil, fmt.Errorf("failed to get user achievement %d: %w", id, err)
	}
	return &ua, nil
}

func (r *postgresAchievementRepository) Grant(ctx context.Context, userID, achievementID int) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, achievementID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err, "user_achievements_user_id_fkey"):
			return false, ErrUserNotFound
		case isForeignKeyViolation(err, "user_achievements_achievement_id_fkey"):
			return false, ErrAchievementNotFound
		}
		return false, fmt.Errorf("failed to grant achievement %d to user %d: %w", achievementID, userID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

// LoadPlayerRecord aggregates hole-score facts for each of the user's completed rounds.
func (r *postgresAchievementRepository) LoadPlayerRecord(ctx context.Context, userID int) (*models.PlayerRecord, error) {
	query := `
		SELECT r.id, r.total_score,
			COUNT(hs.id) FILTER (WHERE hs.fairway_hit),
			COUNT(hs.id) FILTER (WHERE hs.sand_save),
			COUNT(hs.id),
			COUNT(hs.putts),
			COALESCE(SUM(hs.putts), 0)
		FROM rounds r
		LEFT JOIN hole_scores hs ON hs.round_id = r.id
		WHERE r.user_id = $1 AND r.is_completed
		GROUP BY r.id, r.total_score
		ORDER BY r.id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds for user %d: %w", userID, err)
	}
	defer rows.Close()

	record := &models.PlayerRecord{UserID: userID}
	for rows.Next() {
		var f models.RoundFacts
		if err := rows.Scan(&f.RoundID, &f.TotalScore, &f.FairwaysHit, &f.SandSaves,
			&f.HolesPlayed, &f.HolesWithPutt, &f.TotalPutts); err != nil {
			return nil, fmt.Errorf("failed to scan round facts: %w", err)
		}
		record.Rounds = append(record.Rounds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round facts: %w", err)
	}
	record.CompletedRounds = len(record.Rounds)
	return record, nil
}
