package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, age, gender, bio, media, interests, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			bio = EXCLUDED.bio,
			media = EXCLUDED.media,
			interests = EXCLUDED.interests,
			completed = EXCLUDED.completed,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Name, profile.Age, profile.Gender, profile.Bio,
		pq.Array(profile.Media), pq.Array(profile.Interests), profile.Completed,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT user_id, name, age, gender, bio, media, interests, banned, completed,
		       created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.Name, &profile.Age, &profile.Gender, &profile.Bio,
		pq.Array(&profile.Media), pq.Array(&profile.Interests),
		&profile.Banned, &profile.Completed,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) NextEligible(ctx context.Context, viewerID int64, exclude []int64) (*domain.Profile, error) {
	if exclude == nil {
		exclude = []int64{}
	}
	var profile domain.Profile
	query := `
		SELECT p.user_id, p.name, p.age, p.gender, p.bio, p.media, p.interests,
		       p.banned, p.completed, p.created_at, p.updated_at
		FROM profiles p
		WHERE p.user_id <> $1
		  AND p.completed
		  AND NOT p.banned
		  AND p.user_id <> ALL($2)
		  AND NOT EXISTS (
			SELECT 1 FROM likes l WHERE l.from_id = $1 AND l.to_id = p.user_id
		  )
		ORDER BY random()
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, viewerID, pq.Array(exclude)).Scan(
		&profile.UserID, &profile.Name, &profile.Age, &profile.Gender, &profile.Bio,
		pq.Array(&profile.Media), pq.Array(&profile.Interests),
		&profile.Banned, &profile.Completed,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	query := `UPDATE profiles SET banned = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`
	result, err := r.db.ExecContext(ctx, query, banned, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
