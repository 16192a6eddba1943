package registration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/repository"
)

type RegistrationUseCase struct {
	sessionRepo   repository.SessionRepository
	profileRepo   repository.ProfileRepository
	genderOptions []string
}

func NewRegistrationUseCase(
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	genderOptions []string,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		sessionRepo:   sessionRepo,
		profileRepo:   profileRepo,
		genderOptions: genderOptions,
	}
}

// TurnResult tells the transport what to render after a turn: the prompt
// for the next (or repeated) step, button options if any, and the committed
// profile once the questionnaire is done.
type TurnResult struct {
	Prompt  string
	Options []string
	Done    bool
	Profile *domain.Profile
}

// InProgress reports whether the user has an in-flight session.
func (uc *RegistrationUseCase) InProgress(ctx context.Context, userID int64) (bool, error) {
	_, err := uc.sessionRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HasCompletedProfile reports whether the user already committed a
// profile. Used by the transport dispatch to route turns.
func (uc *RegistrationUseCase) HasCompletedProfile(ctx context.Context, userID int64) (bool, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.Completed, nil
}

// Begin creates a fresh session at the Name step. An existing session is
// replaced, which is also how re-registration of a completed profile starts.
func (uc *RegistrationUseCase) Begin(ctx context.Context, userID int64) (*TurnResult, error) {
	session := domain.NewRegistrationSession(userID)
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start registration: %w", err)
	}
	return &TurnResult{Prompt: "Let's set up your profile. What's your name?"}, nil
}

// Cancel discards the in-flight session, if any.
func (uc *RegistrationUseCase) Cancel(ctx context.Context, userID int64) error {
	return uc.sessionRepo.Delete(ctx, userID)
}

// HandleTurn feeds one inbound turn to the state machine. Invalid input
// re-prompts the same step without touching the session; a storage failure
// during commit keeps the session so the next turn retries it.
func (uc *RegistrationUseCase) HandleTurn(ctx context.Context, userID int64, turn domain.TurnPayload) (*TurnResult, error) {
	session, err := uc.sessionRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return uc.Begin(ctx, userID)
		}
		return nil, err
	}

	switch session.Step {
	case domain.StepName:
		name := strings.TrimSpace(turn.Answer())
		if name == "" {
			return &TurnResult{Prompt: "What's your name?"}, nil
		}
		session.Draft.Name = name
		session.Step = domain.StepAge
		return uc.advance(ctx, session, &TurnResult{Prompt: "How old are you?"})

	case domain.StepAge:
		age, err := strconv.Atoi(strings.TrimSpace(turn.Answer()))
		if err != nil || age <= 0 {
			return &TurnResult{Prompt: "Please send your age as a number."}, nil
		}
		session.Draft.Age = age
		session.Step = domain.StepGender
		return uc.advance(ctx, session, &TurnResult{
			Prompt:  "How do you identify?",
			Options: uc.genderOptions,
		})

	case domain.StepGender:
		answer := turn.Answer()
		if !uc.validGender(answer) {
			return &TurnResult{
				Prompt:  "Please pick one of the options.",
				Options: uc.genderOptions,
			}, nil
		}
		session.Draft.Gender = answer
		session.Step = domain.StepPhoto
		return uc.advance(ctx, session, &TurnResult{Prompt: "Send a photo for your profile."})

	case domain.StepPhoto:
		if !turn.HasMedia() {
			return &TurnResult{Prompt: "I need a photo. Send one to continue."}, nil
		}
		session.Draft.Media = []string{turn.MediaID}
		session.Step = domain.StepInterests
		return uc.advance(ctx, session, &TurnResult{Prompt: "Last one: list your interests, separated by commas."})

	case domain.StepInterests:
		session.Draft.Interests = parseInterests(turn.Answer())
		return uc.commit(ctx, session)

	default:
		// Unknown step in a stored session; start over rather than wedge
		// the conversation.
		fmt.Printf("Warning: user %d had unknown registration step %q, restarting\n", userID, session.Step)
		return uc.Begin(ctx, userID)
	}
}

// advance persists the session after a successful step and returns the next
// prompt. If the save fails, the step is not advanced for the user: their
// next turn replays against the stored state.
func (uc *RegistrationUseCase) advance(ctx context.Context, session *domain.RegistrationSession, next *TurnResult) (*TurnResult, error) {
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save registration progress: %w", err)
	}
	return next, nil
}

// commit upserts the assembled profile and clears the session. The upsert
// replaces every field of a prior profile, so re-registration never merges
// old values with new ones. On failure the session survives and the next
// turn retries the commit with the same data.
func (uc *RegistrationUseCase) commit(ctx context.Context, session *domain.RegistrationSession) (*TurnResult, error) {
	profile := &domain.Profile{
		UserID:    session.UserID,
		Name:      session.Draft.Name,
		Age:       session.Draft.Age,
		Gender:    session.Draft.Gender,
		Media:     session.Draft.Media,
		Interests: session.Draft.Interests,
		Completed: true,
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := uc.sessionRepo.Delete(ctx, session.UserID); err != nil {
		// The profile is committed; a leftover session only means the next
		// turn re-runs an idempotent upsert.
		fmt.Printf("Warning: failed to clear session for user %d: %v\n", session.UserID, err)
	}

	return &TurnResult{
		Prompt:  "Your profile is ready! Send \"search\" to start browsing.",
		Done:    true,
		Profile: profile,
	}, nil
}

func (uc *RegistrationUseCase) validGender(answer string) bool {
	for _, opt := range uc.genderOptions {
		if answer == opt {
			return true
		}
	}
	return false
}

// parseInterests splits on commas into a trimmed, deduplicated set. An
// empty result is accepted.
func parseInterests(raw string) []string {
	seen := make(map[string]struct{})
	interests := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		interests = append(interests, part)
	}
	return interests
}
