// Package chatclient talks to the external chat provider (a
// GetStream-compatible REST API) for notifications that don't live in
// the primary store: one message lookup and an unread-count lookup,
// both authenticated with a freshly minted, never-cached JWT.
package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goil-app/notification-read-service/internal/features/notification"
	"github.com/goil-app/notification-read-service/internal/pkg/jwtutil"
)

const (
	baseURL     = "https://chat.stream-io-api.com"
	tokenTTL    = 60 * time.Second
	httpTimeout = 10 * time.Second
)

type Client struct {
	httpClient *http.Client
	apiKey     string
	secret     string
}

func New(apiKey, secret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		apiKey:     apiKey,
		secret:     secret,
	}
}

func (c *Client) newRequest(ctx context.Context, userID, path string) (*http.Request, error) {
	token, err := jwtutil.MintProviderToken(userID, c.secret, tokenTTL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Stream-Auth-Type", "jwt")
	req.Header.Set("Authorization", token)
	req.Header.Set("api_key", c.apiKey)
	return req, nil
}

type messageResponse struct {
	Message *struct {
		Channel struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"channel"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Text string `json:"text"`
	} `json:"message"`
}

// FindMessageByUUID fetches one message by id and synthesizes a
// Notification from its channel/user/text fields. The title comes
// from the channel name, except for one-to-one channels where it's
// the sender's name.
func (c *Client) FindMessageByUUID(ctx context.Context, id, userID string) (*notification.Notification, error) {
	req, err := c.newRequest(ctx, userID, "/messages/"+id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chatclient: provider returned status %d: %s", resp.StatusCode, body)
	}

	var parsed messageResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message == nil {
		return &notification.Notification{ID: id}, nil
	}

	m := parsed.Message
	title := m.Channel.Name
	if m.Channel.Type == "messaging-oneToOne" {
		title = m.User.Name
	}

	return &notification.Notification{
		ID:    id,
		Title: title,
		Body:  fmt.Sprintf("%s: %s", m.User.Name, m.Text),
	}, nil
}

type unreadResponse struct {
	TotalUnreadCount *int64 `json:"total_unread_count"`
	UnreadCount      *int64 `json:"unread_count"`
}

// GetUnreadCount returns the caller's external unread count, 0 on any
// non-2xx response or missing fields.
func (c *Client) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	req, err := c.newRequest(ctx, userID, "/unread")
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, nil
	}

	var parsed unreadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, nil
	}

	if parsed.TotalUnreadCount != nil {
		return int(*parsed.TotalUnreadCount), nil
	}
	if parsed.UnreadCount != nil {
		return int(*parsed.UnreadCount), nil
	}
	return 0, nil
}
