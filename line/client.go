// Package line is a minimal client for the LINE Messaging API push
// endpoint.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
)

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Client pushes text messages to a single LINE user.
type Client struct {
	endpoint   string
	token      string
	userID     string
	httpClient *http.Client
}

func NewClient(cfg config.LINEConfig, token, userID string) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		token:      token,
		userID:     userID,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// Push sends one text message. Non-2xx responses are errors; delivery is
// not retried here.
func (c *Client) Push(ctx context.Context, text string) error {
	body, err := json.Marshal(pushRequest{
		To:       c.userID,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("line push: %s", resp.Status)
	}
	return nil
}
