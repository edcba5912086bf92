// Package trackingclient fires the TRACK_NOTIFICATION event to the
// configured queue without blocking the response path, grounded in
// the original QueueService's enqueue_track_notification.
package trackingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goil-app/notification-read-service/internal/pkg/logger"
	"github.com/goil-app/notification-read-service/internal/pkg/queue"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

const dispatchTimeout = 5 * time.Second

// TrackNotificationParams is the payload shape the queue consumer
// expects, camelCase to match the rest of the wire contract.
type TrackNotificationParams struct {
	ID                string `json:"id"`
	BusinessID        string `json:"businessId,omitempty"`
	AccountID         string `json:"accountId,omitempty"`
	DeviceClientType  string `json:"deviceClientType,omitempty"`
	DeviceClientModel string `json:"deviceClientModel,omitempty"`
	DeviceClientOS    string `json:"deviceClientOS,omitempty"`
	SessionID         string `json:"sessionId,omitempty"`
}

type queuePayload struct {
	Name   string                  `json:"name"`
	Params TrackNotificationParams `json:"params"`
}

// Headers carries the inbound request headers the dispatcher forwards.
type Headers struct {
	Authorization  string
	ClientPlatform string
	ClientOS       string
	ClientDevice   string
	ClientID       string
	SessionID      string
}

// Dispatcher sends the tracking event either as an HTTP POST to the
// queue endpoint, or, if a Redis producer is configured, directly onto
// the BullMQ queue it fronts.
type Dispatcher struct {
	httpClient *http.Client
	queueURL   string
	producer   *queue.Producer
}

func New(queueURL string, producer *queue.Producer) *Dispatcher {
	return &Dispatcher{
		httpClient: &http.Client{Timeout: dispatchTimeout},
		queueURL:   queueURL,
		producer:   producer,
	}
}

// Dispatch fires the tracking event on its own detached context with a
// fixed timeout; callers invoke this in a goroutine and never wait on
// it. Failures are logged, never surfaced.
func (d *Dispatcher) Dispatch(notificationID, businessID string, headers Headers) {
	accountID := headers.ClientID
	if accountID == "" {
		accountID = uuid.New().String()
	}

	params := TrackNotificationParams{
		ID:                notificationID,
		BusinessID:        businessID,
		AccountID:         accountID,
		DeviceClientType:  headers.ClientPlatform,
		DeviceClientModel: headers.ClientDevice,
		DeviceClientOS:    headers.ClientOS,
		SessionID:         headers.SessionID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if d.producer != nil {
		if _, err := d.producer.Add(ctx, "TRACK_NOTIFICATION", params); err != nil {
			logger.Warn("tracking: [%s] redis enqueue failed: %v", pkgerrors.KindTracking, err)
		}
		return
	}

	d.dispatchHTTP(ctx, params, headers)
}

func (d *Dispatcher) dispatchHTTP(ctx context.Context, params TrackNotificationParams, headers Headers) {
	payload := queuePayload{Name: "TRACK_NOTIFICATION", Params: params}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("tracking: [%s] failed to marshal payload: %v", pkgerrors.KindTracking, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.queueURL, bytes.NewReader(body))
	if err != nil {
		logger.Warn("tracking: [%s] failed to build request: %v", pkgerrors.KindTracking, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if headers.Authorization != "" {
		req.Header.Set("authorization", headers.Authorization)
	}
	if headers.ClientPlatform != "" {
		req.Header.Set("x-client-platform", headers.ClientPlatform)
	}
	if headers.ClientOS != "" {
		req.Header.Set("x-client-os", headers.ClientOS)
	}
	if headers.ClientDevice != "" {
		req.Header.Set("x-client-device", headers.ClientDevice)
	}
	if headers.ClientID != "" {
		req.Header.Set("x-client-id", headers.ClientID)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		logger.Warn("tracking: [%s] request failed: %v", pkgerrors.KindTracking, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("tracking: [%s] queue endpoint returned status %d", pkgerrors.KindTracking, resp.StatusCode)
	}
}
