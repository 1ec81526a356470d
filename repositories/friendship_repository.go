package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rookieryder/golf-backend/models"
)

// FriendshipRepository stores friendships as directed edge pairs and always mutates both edges together.
type FriendshipRepository interface {
	CreatePair(ctx context.Context, userID, friendID int) error
	DeletePair(ctx context.Context, userID, friendID int) error
	ListByUser(ctx context.Context, userID int) ([]models.Friendship, error)
}

type postgresFriendshipRepository struct {
	db *sql.DB
}

func NewPostgresFriendshipRepository(db *sql.DB) FriendshipRepository {
	return &postgresFriendshipRepository{db: db}
}

func (r *postgresFriendshipRepository) CreatePair(ctx context.Context, userID, friendID int) error {
	query := `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING`

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, edge := range [][2]int{{userID, friendID}, {friendID, userID}} {
			if _, err := tx.ExecContext(ctx, query, edge[0], edge[1]); err != nil {
				if isForeignKeyViolation(err, "friendships_user_id_fkey") ||
					isForeignKeyViolation(err, "friendships_friend_id_fkey") {
					return ErrUserNotFound
				}
				return fmt.Errorf("failed to insert friendship %d->%d: %w", edge[0], edge[1], err)
			}
		}
		return nil
	})
}

// DeletePair removes both directions in one transaction. Removing a missing pair is a no-op.
func (r *postgresFriendshipRepository) DeletePair(ctx context.Context, userID, friendID int) error {
	query := `DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, edge := range [][2]int{{userID, friendID}, {friendID, userID}} {
			if _, err := tx.ExecContext(ctx, query, edge[0], edge[1]); err != nil {
				return fmt.Errorf("failed to delete friendship %d->%d: %w", edge[0], edge[1], err)
			}
		}
		return nil
	})
}

func (r *postgresFriendshipRepository) ListByUser(ctx context.Context, userID int) ([]models.Friendship, error) {
	query := `
		SELECT f.id, f.user_id, f.friend_id, f.created_at, u.username, u.profile_picture_key
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.username ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	list := make([]models.Friendship, 0)
	for rows.Next() {
		var f models.Friendship
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.CreatedAt,
			&f.FriendUsername, &f.FriendProfilePictureKey); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
