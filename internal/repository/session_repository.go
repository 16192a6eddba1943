package repository

import (
	"context"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
)

// SessionRepository stores in-flight registration sessions keyed by user.
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (*domain.RegistrationSession, error)
	Save(ctx context.Context, session *domain.RegistrationSession) error
	Delete(ctx context.Context, userID int64) error
}

// SeenRepository tracks candidates a viewer has dismissed within the
// current discovery pass. Entries expire; dislikes are never persisted
// beyond this set.
type SeenRepository interface {
	Add(ctx context.Context, viewerID, targetID int64) error
	Members(ctx context.Context, viewerID int64) ([]int64, error)
	Clear(ctx context.Context, viewerID int64) error
}
