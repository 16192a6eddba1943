package postgres

import (
	"context"

	"github.com/dmkor/sparkmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

// InsertIfAbsent relies on the (from_id, to_id) primary key: a concurrent
// duplicate hits the conflict clause instead of failing, and RowsAffected
// tells us whether this call won the insert.
func (r *likeRepository) InsertIfAbsent(ctx context.Context, fromID, toID int64) (bool, error) {
	query := `INSERT INTO likes (from_id, to_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	result, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *likeRepository) Has(ctx context.Context, fromID, toID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE from_id = $1 AND to_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, fromID, toID); err != nil {
		return false, err
	}
	return exists, nil
}
