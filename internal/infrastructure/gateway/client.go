package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the chat-transport gateway, which owns the actual
// messenger connection. This service only ever uses its send primitive.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	UserID  int64    `json:"user_id"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// Send delivers text to a user, optionally with choice affordances the
// gateway renders as buttons.
func (c *Client) Send(ctx context.Context, userID int64, text string, options []string) error {
	body, err := json.Marshal(sendRequest{
		UserID:  userID,
		Text:    text,
		Options: options,
	})
	if err != nil {
		return fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway send failed: status %d", resp.StatusCode)
	}
	return nil
}
