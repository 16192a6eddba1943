package repository

import (
	"context"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
)

type ProfileRepository interface {
	// Upsert writes the full profile atomically, replacing every field of
	// any existing row for the same user.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// NextEligible returns one completed, unbanned profile the viewer has
	// not liked and that is not in the exclude set, or nil when none is
	// left. Order is unspecified.
	NextEligible(ctx context.Context, viewerID int64, exclude []int64) (*domain.Profile, error)
	SetBanned(ctx context.Context, userID int64, banned bool) error
}
