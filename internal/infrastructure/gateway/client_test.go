package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Run("DeliversPayload", func(t *testing.T) {
		var got sendRequest
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/send", r.URL.Path)
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "secret-token")
		err := client.Send(context.Background(), 42, "It's a match!", []string{"hi there"})
		require.NoError(t, err)

		assert.Equal(t, "Bearer secret-token", auth)
		assert.Equal(t, int64(42), got.UserID)
		assert.Equal(t, "It's a match!", got.Text)
		assert.Equal(t, []string{"hi there"}, got.Options)
	})

	t.Run("GatewayErrorSurfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "secret-token")
		err := client.Send(context.Background(), 42, "hello", nil)
		assert.Error(t, err)
	})
}
