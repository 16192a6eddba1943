package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/infrastructure/gemini"
	"github.com/dmkor/sparkmatch-backend/internal/repository"
	"github.com/google/uuid"
)

// Sender delivers an outbound message through the chat-transport gateway.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, options []string) error
}

type DiscoveryUseCase struct {
	profileRepo  repository.ProfileRepository
	likeRepo     repository.LikeRepository
	seenRepo     repository.SeenRepository
	sender       Sender
	geminiClient *gemini.GeminiClient
}

func NewDiscoveryUseCase(
	profileRepo repository.ProfileRepository,
	likeRepo repository.LikeRepository,
	seenRepo repository.SeenRepository,
	sender Sender,
	geminiClient *gemini.GeminiClient,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		profileRepo:  profileRepo,
		likeRepo:     likeRepo,
		seenRepo:     seenRepo,
		sender:       sender,
		geminiClient: geminiClient,
	}
}

// CandidateResponse is the public-facing slice of a candidate profile.
type CandidateResponse struct {
	UserID    int64    `json:"user_id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Media     []string `json:"media"`
	Interests []string `json:"interests"`
}

// NextResponse is the result of asking for the next candidate. Exhausted is
// a normal outcome, not an error.
type NextResponse struct {
	Candidate *CandidateResponse `json:"candidate,omitempty"`
	Exhausted bool               `json:"exhausted"`
}

// DecideResponse reports what a decision did.
type DecideResponse struct {
	Recorded bool    `json:"recorded"`
	Matched  bool    `json:"matched"`
	MatchID  *string `json:"match_id,omitempty"`
}

// NextCandidate picks one eligible profile the viewer has not acted on:
// not the viewer, completed, not banned, not liked before, not dismissed in
// this pass. Callers get no ordering guarantee beyond "no repeats".
func (uc *DiscoveryUseCase) NextCandidate(ctx context.Context, viewerID int64) (*NextResponse, error) {
	seen, err := uc.seenRepo.Members(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}

	candidate, err := uc.profileRepo.NextEligible(ctx, viewerID, seen)
	if err != nil {
		return nil, fmt.Errorf("failed to pick candidate: %w", err)
	}
	if candidate == nil {
		return &NextResponse{Exhausted: true}, nil
	}

	return &NextResponse{Candidate: toCandidate(candidate)}, nil
}

// Decide records the viewer's reaction to a candidate.
//
// A like is written first and the reverse edge checked second. The unique
// (from,to) key makes the write idempotent, and because each call checks
// only after its own edge is durable, whichever of two concurrent mutual
// likes lands second is the one that observes both edges. That call, and
// only that call, announces the match.
func (uc *DiscoveryUseCase) Decide(ctx context.Context, viewerID, targetID int64, decision domain.Decision) (*DecideResponse, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidDecision
	}
	if viewerID == targetID {
		return nil, domain.ErrCannotLikeSelf
	}

	if decision == domain.DecisionDislike {
		if err := uc.seenRepo.Add(ctx, viewerID, targetID); err != nil {
			return nil, err
		}
		return &DecideResponse{Recorded: true}, nil
	}

	target, err := uc.profileRepo.GetByUserID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// Stale candidate reference, e.g. removed mid-session. Swallow
			// it so the viewer learns nothing about moderation state.
			return &DecideResponse{Recorded: true}, nil
		}
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}
	if !target.Visible() {
		return &DecideResponse{Recorded: true}, nil
	}

	inserted, err := uc.likeRepo.InsertIfAbsent(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}

	mutual, err := uc.likeRepo.Has(ctx, targetID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reverse like: %w", err)
	}

	response := &DecideResponse{Recorded: true}

	// Notify only when this call created the edge: a repeated like finds
	// inserted == false and stays silent, so each pair matches once.
	if mutual && inserted {
		matchID := uuid.NewString()
		response.Matched = true
		response.MatchID = &matchID
		uc.announceMatch(ctx, matchID, viewerID, target)
	}

	return response, nil
}

// ResetPass clears the viewer's dismissals so previously disliked profiles
// can show up again.
func (uc *DiscoveryUseCase) ResetPass(ctx context.Context, viewerID int64) error {
	return uc.seenRepo.Clear(ctx, viewerID)
}

// announceMatch sends the pair of match notifications. Delivery is best
// effort: the edges are the source of truth, and a failed send must not
// fail the decision that created the match.
func (uc *DiscoveryUseCase) announceMatch(ctx context.Context, matchID string, viewerID int64, target *domain.Profile) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		fmt.Printf("Warning: match %s: failed to load viewer profile %d: %v\n", matchID, viewerID, err)
		return
	}

	icebreakers := uc.icebreakers(ctx, viewer, target)

	uc.notify(ctx, matchID, viewer, target, icebreakers)
	uc.notify(ctx, matchID, target, viewer, icebreakers)
}

func (uc *DiscoveryUseCase) notify(ctx context.Context, matchID string, to, other *domain.Profile, icebreakers []string) {
	text := fmt.Sprintf("It's a match! %s liked you back.", other.Name)
	if err := uc.sender.Send(ctx, to.UserID, text, icebreakers); err != nil {
		fmt.Printf("Warning: match %s: failed to notify user %d: %v\n", matchID, to.UserID, err)
	}
}

func (uc *DiscoveryUseCase) icebreakers(ctx context.Context, a, b *domain.Profile) []string {
	if uc.geminiClient == nil {
		return nil
	}
	lines, err := uc.geminiClient.GenerateIcebreakers(ctx, a.Interests, b.Interests)
	if err != nil {
		fmt.Printf("Warning: failed to generate icebreakers: %v\n", err)
		return nil
	}
	return lines
}

func toCandidate(p *domain.Profile) *CandidateResponse {
	return &CandidateResponse{
		UserID:    p.UserID,
		Name:      p.Name,
		Age:       p.Age,
		Media:     p.Media,
		Interests: p.Interests,
	}
}
