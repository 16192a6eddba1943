package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/discovery"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/registration"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes shared by the handler tests. memStore implements the
// profile, like and seen repository interfaces in one struct.

type memSessionRepo struct {
	sessions map[int64]*domain.RegistrationSession
}

func (r *memSessionRepo) Get(_ context.Context, userID int64) (*domain.RegistrationSession, error) {
	s, ok := r.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) Save(_ context.Context, session *domain.RegistrationSession) error {
	copied := *session
	r.sessions[session.UserID] = &copied
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, userID int64) error {
	delete(r.sessions, userID)
	return nil
}

type memStore struct {
	profiles map[int64]*domain.Profile
	edges    map[[2]int64]bool
	seen     map[int64]map[int64]bool
}

func newMemStore() *memStore {
	return &memStore{
		profiles: make(map[int64]*domain.Profile),
		edges:    make(map[[2]int64]bool),
		seen:     make(map[int64]map[int64]bool),
	}
}

func (r *memStore) Upsert(_ context.Context, profile *domain.Profile) error {
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *memStore) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memStore) NextEligible(_ context.Context, viewerID int64, exclude []int64) (*domain.Profile, error) {
	excluded := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var ids []int64
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p := r.profiles[id]
		if id == viewerID || !p.Completed || p.Banned || excluded[id] || r.edges[[2]int64{viewerID, id}] {
			continue
		}
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *memStore) SetBanned(_ context.Context, userID int64, banned bool) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Banned = banned
	return nil
}

func (r *memStore) InsertIfAbsent(_ context.Context, fromID, toID int64) (bool, error) {
	key := [2]int64{fromID, toID}
	if r.edges[key] {
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *memStore) Has(_ context.Context, fromID, toID int64) (bool, error) {
	return r.edges[[2]int64{fromID, toID}], nil
}

func (r *memStore) Add(_ context.Context, viewerID, targetID int64) error {
	if r.seen[viewerID] == nil {
		r.seen[viewerID] = make(map[int64]bool)
	}
	r.seen[viewerID][targetID] = true
	return nil
}

func (r *memStore) Members(_ context.Context, viewerID int64) ([]int64, error) {
	var ids []int64
	for id := range r.seen[viewerID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memStore) Clear(_ context.Context, viewerID int64) error {
	delete(r.seen, viewerID)
	return nil
}

type noopSender struct{}

func (noopSender) Send(_ context.Context, _ int64, _ string, _ []string) error { return nil }

func setupTurnRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	sessions := &memSessionRepo{sessions: make(map[int64]*domain.RegistrationSession)}
	regUC := registration.NewRegistrationUseCase(sessions, store, []string{"gay", "bi", "trans", "hetero", "other"})
	discUC := discovery.NewDiscoveryUseCase(store, store, store, noopSender{}, nil)

	h := NewTurnHandler(regUC, discUC)

	router := gin.New()
	// Stand-in for the auth middleware: the test supplies the user id.
	router.POST("/turns", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		c.Set("user_id", id)
	}, h.HandleTurn)
	return router
}

func postTurn(t *testing.T, router *gin.Engine, userID int64, body any) (int, TurnResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/turns", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp TurnResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func textTurn(s string) map[string]any  { return map[string]any{"text": s} }
func mediaTurn(s string) map[string]any { return map[string]any{"media_id": s} }

func seedProfile(store *memStore, userID int64, name string) {
	store.profiles[userID] = &domain.Profile{
		UserID: userID, Name: name, Age: 30, Gender: "bi",
		Media: []string{"m"}, Interests: []string{"books"}, Completed: true,
	}
}

func TestTurnDispatch(t *testing.T) {
	t.Run("NewUserIsRoutedToRegistration", func(t *testing.T) {
		router := setupTurnRouter(newMemStore())

		code, resp := postTurn(t, router, 1, textTurn("hello"))
		require.Equal(t, http.StatusOK, code)
		require.Len(t, resp.Messages, 1)
		assert.Contains(t, resp.Messages[0].Text, "name")
	})

	t.Run("RegistrationThenSearch", func(t *testing.T) {
		store := newMemStore()
		seedProfile(store, 2, "Bob")
		router := setupTurnRouter(store)

		for _, turn := range []map[string]any{
			textTurn("hi"), // starts the session
			textTurn("Alice"),
			textTurn("25"),
			{"option": "bi"},
			mediaTurn("photo-1"),
			textTurn("music, hiking"),
		} {
			code, _ := postTurn(t, router, 1, turn)
			require.Equal(t, http.StatusOK, code)
		}

		require.NotNil(t, store.profiles[1], "profile committed")
		assert.True(t, store.profiles[1].Completed)

		code, resp := postTurn(t, router, 1, textTurn("search"))
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, resp.Candidate)
		assert.Equal(t, int64(2), resp.Candidate.UserID)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, []string{"like", "dislike"}, resp.Messages[0].Options)
	})

	t.Run("InvalidAgeReprompts", func(t *testing.T) {
		router := setupTurnRouter(newMemStore())

		postTurn(t, router, 1, textTurn("hi"))
		postTurn(t, router, 1, textTurn("Alice"))

		code, resp := postTurn(t, router, 1, textTurn("abc"))
		require.Equal(t, http.StatusOK, code)
		require.Len(t, resp.Messages, 1)
		assert.Contains(t, resp.Messages[0].Text, "number")
	})

	t.Run("ChoiceRoutesToDiscovery", func(t *testing.T) {
		store := newMemStore()
		seedProfile(store, 1, "Alice")
		seedProfile(store, 2, "Bob")
		seedProfile(store, 3, "Carol")
		router := setupTurnRouter(store)

		code, resp := postTurn(t, router, 1, map[string]any{
			"choice": map[string]any{"action": "like", "target_id": 2},
		})
		require.Equal(t, http.StatusOK, code)
		assert.True(t, store.edges[[2]int64{1, 2}], "like edge recorded")
		// The pass continues with the next candidate.
		require.NotNil(t, resp.Candidate)
		assert.Equal(t, int64(3), resp.Candidate.UserID)
	})

	t.Run("MutualChoiceReportsMatch", func(t *testing.T) {
		store := newMemStore()
		seedProfile(store, 1, "Alice")
		seedProfile(store, 2, "Bob")
		router := setupTurnRouter(store)

		postTurn(t, router, 2, map[string]any{
			"choice": map[string]any{"action": "like", "target_id": 1},
		})
		code, resp := postTurn(t, router, 1, map[string]any{
			"choice": map[string]any{"action": "like", "target_id": 2},
		})
		require.Equal(t, http.StatusOK, code)
		assert.True(t, resp.Matched)
	})

	t.Run("MalformedChoiceRejected", func(t *testing.T) {
		store := newMemStore()
		seedProfile(store, 1, "Alice")
		router := setupTurnRouter(store)

		code, _ := postTurn(t, router, 1, map[string]any{
			"choice": map[string]any{"action": "superlike", "target_id": 2},
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("CancelDiscardsRegistration", func(t *testing.T) {
		router := setupTurnRouter(newMemStore())

		postTurn(t, router, 1, textTurn("hi"))
		postTurn(t, router, 1, textTurn("Alice"))

		code, resp := postTurn(t, router, 1, textTurn("/cancel"))
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, resp.Messages[0].Text, "cancelled")

		// The next turn starts over at the name step.
		code, resp = postTurn(t, router, 1, textTurn("hello again"))
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, resp.Messages[0].Text, "name")
	})

	t.Run("CompletedUserGetsHelp", func(t *testing.T) {
		store := newMemStore()
		seedProfile(store, 1, "Alice")
		router := setupTurnRouter(store)

		code, resp := postTurn(t, router, 1, textTurn("what do I do"))
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, resp.Messages[0].Text, "search")
	})
}
