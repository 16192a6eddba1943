package moderation

import (
	"context"
	"errors"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/repository"
)

type ModerationUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewModerationUseCase(profileRepo repository.ProfileRepository) *ModerationUseCase {
	return &ModerationUseCase{profileRepo: profileRepo}
}

// SetBanned flips the ban flag. Discovery picks the change up on the next
// candidate query; already shown candidates fall under the stale-reference
// rule.
func (uc *ModerationUseCase) SetBanned(ctx context.Context, userID int64, banned bool) error {
	return uc.profileRepo.SetBanned(ctx, userID, banned)
}

// IsBanned reports the ban flag. A user without a profile is not banned.
func (uc *ModerationUseCase) IsBanned(ctx context.Context, userID int64) (bool, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.Banned, nil
}
