// Package push sends notifications to user devices through the external
// push gateway. Any non-success status is a generic failure; the core
// never retries.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is the gateway's request payload.
type Message struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Client posts messages to the push gateway.
type Client struct {
	// URL is the gateway endpoint.
	URL string
	// HTTPClient performs the request; a default client with a timeout
	// is used when nil.
	HTTPClient *http.Client
}

// NewClient returns a Client for the given gateway URL.
func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one notification. A transport error or a non-2xx status
// is returned as a failure.
func (c *Client) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(Message{Token: token, Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
