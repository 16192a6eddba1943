package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/discovery"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/registration"
	"github.com/gin-gonic/gin"
)

// TurnHandler receives inbound turns from the transport gateway and routes
// them: users without a completed profile (or mid-questionnaire) go to
// registration, everyone else to discovery.
type TurnHandler struct {
	registrationUseCase *registration.RegistrationUseCase
	discoveryUseCase    *discovery.DiscoveryUseCase
}

func NewTurnHandler(
	registrationUseCase *registration.RegistrationUseCase,
	discoveryUseCase *discovery.DiscoveryUseCase,
) *TurnHandler {
	return &TurnHandler{
		registrationUseCase: registrationUseCase,
		discoveryUseCase:    discoveryUseCase,
	}
}

// ChoicePayload is a structured button press, decoded once here instead of
// string-splitting an action_targetId blob deeper in the stack.
type ChoicePayload struct {
	Action   string `json:"action" binding:"required,oneof=like dislike"`
	TargetID int64  `json:"target_id" binding:"required"`
}

// TurnRequest is one inbound turn. At most one payload field is set.
type TurnRequest struct {
	DisplayName string         `json:"display_name"`
	Text        *string        `json:"text" binding:"omitempty,max=4096"`
	MediaID     *string        `json:"media_id" binding:"omitempty,max=256"`
	Choice      *ChoicePayload `json:"choice"`
	Option      *string        `json:"option" binding:"omitempty,max=256"`
}

// Message is one outbound message for the gateway to render.
type Message struct {
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// TurnResponse is what the gateway renders in reply to a turn.
type TurnResponse struct {
	Messages  []Message                    `json:"messages"`
	Candidate *discovery.CandidateResponse `json:"candidate,omitempty"`
	Exhausted bool                         `json:"exhausted,omitempty"`
	Matched   bool                         `json:"matched,omitempty"`
}

// HandleTurn handles POST /turns
func (h *TurnHandler) HandleTurn(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	uid := userID.(int64)

	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	text := ""
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
	}

	// A button decision is a discovery turn no matter where the user is.
	if req.Choice != nil {
		h.decide(c, uid, req.Choice)
		return
	}

	if strings.EqualFold(text, "/cancel") {
		if err := h.registrationUseCase.Cancel(ctx, uid); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to cancel"})
			return
		}
		c.JSON(http.StatusOK, TurnResponse{Messages: []Message{{Text: "Okay, cancelled."}}})
		return
	}

	inProgress, err := h.registrationUseCase.InProgress(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "temporary failure, please retry"})
		return
	}

	completed := false
	if !inProgress {
		completed, err = h.registrationUseCase.HasCompletedProfile(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "temporary failure, please retry"})
			return
		}
	}

	if inProgress || !completed {
		h.registrationTurn(c, uid, req)
		return
	}

	if strings.EqualFold(text, "search") || strings.EqualFold(text, "/search") {
		h.next(c, uid)
		return
	}

	// Explicit re-registration for an existing profile.
	if strings.EqualFold(text, "/edit") {
		result, err := h.registrationUseCase.Begin(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "temporary failure, please retry"})
			return
		}
		c.JSON(http.StatusOK, toTurnResponse(result))
		return
	}

	c.JSON(http.StatusOK, TurnResponse{Messages: []Message{
		{Text: "Send \"search\" to browse profiles, /edit to redo yours, /cancel to stop."},
	}})
}

func (h *TurnHandler) registrationTurn(c *gin.Context, uid int64, req TurnRequest) {
	payload := domain.TurnPayload{}
	if req.Text != nil {
		payload.Text = strings.TrimSpace(*req.Text)
	}
	if req.MediaID != nil {
		payload.MediaID = *req.MediaID
	}
	if req.Option != nil {
		payload.Choice = *req.Option
	}

	result, err := h.registrationUseCase.HandleTurn(c.Request.Context(), uid, payload)
	if err != nil {
		// Session state survives; the gateway tells the user to retry the
		// same turn.
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporary failure, please retry"})
		return
	}

	c.JSON(http.StatusOK, toTurnResponse(result))
}

func (h *TurnHandler) next(c *gin.Context, uid int64) {
	result, err := h.discoveryUseCase.NextCandidate(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporary failure, please retry"})
		return
	}

	if result.Exhausted {
		c.JSON(http.StatusOK, TurnResponse{
			Messages:  []Message{{Text: "No more profiles for now. Check back later!"}},
			Exhausted: true,
		})
		return
	}

	c.JSON(http.StatusOK, TurnResponse{
		Messages: []Message{{
			Text:    candidateCard(result.Candidate),
			Options: []string{"like", "dislike"},
		}},
		Candidate: result.Candidate,
	})
}

func (h *TurnHandler) decide(c *gin.Context, uid int64, choice *ChoicePayload) {
	result, err := h.discoveryUseCase.Decide(c.Request.Context(), uid, choice.TargetID, domain.Decision(choice.Action))
	if err != nil {
		switch err {
		case domain.ErrCannotLikeSelf, domain.ErrInvalidDecision:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporary failure, please retry"})
		}
		return
	}

	if result.Matched {
		// Both sides also get a push through the gateway; this is just the
		// synchronous reply.
		c.JSON(http.StatusOK, TurnResponse{
			Messages: []Message{{Text: "It's a match!"}},
			Matched:  true,
		})
		return
	}

	// Keep the pass going: serve the next candidate right away.
	h.next(c, uid)
}

func candidateCard(cand *discovery.CandidateResponse) string {
	card := fmt.Sprintf("%s, %d", cand.Name, cand.Age)
	if len(cand.Interests) > 0 {
		card += ": " + strings.Join(cand.Interests, ", ")
	}
	return card
}

func toTurnResponse(result *registration.TurnResult) TurnResponse {
	return TurnResponse{Messages: []Message{{
		Text:    result.Prompt,
		Options: result.Options,
	}}}
}
