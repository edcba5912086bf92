package notification

import (
	"encoding/json"
	"time"
)

// LinkedDTO is the wire shape of a notification's linked sub-record,
// carried through as-is when present.
type LinkedDTO struct {
	Type     int             `json:"type"`
	ObjectID string          `json:"objectId,omitempty"`
	Object   json.RawMessage `json:"object,omitempty"`
}

// DTO is the notification shape written to the response, camelCase to
// match the external contract.
type DTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	ImageURLs    []string   `json:"imageUrls"`
	ImagePath    []string   `json:"imagePath"`
	URL          string     `json:"url,omitempty"`
	Type         int        `json:"type,omitempty"`
	PayloadType  int        `json:"payloadType,omitempty"`
	IsRead       bool       `json:"isRead"`
	CreationDate string     `json:"creationDate,omitempty"`
	Linked       *LinkedDTO `json:"linked,omitempty"`
}

// Result is the full data payload the response assembler produces.
type Result struct {
	Notification DTO    `json:"notification"`
	Badge        int    `json:"badge"`
	BusinessName string `json:"businessName"`
	BusinessID   string `json:"businessId"`
}

func toDTO(n *Notification, imageURLs []string) DTO {
	dto := DTO{
		ID:          n.ID,
		Title:       n.Title,
		Body:        n.Body,
		ImageURLs:   imageURLs,
		ImagePath:   n.ImagePaths,
		URL:         n.URL,
		Type:        n.Type,
		PayloadType: n.PayloadType,
		IsRead:      false,
	}
	if n.HasCreation {
		dto.CreationDate = n.CreationDate.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	if n.HasLinked {
		dto.Linked = &LinkedDTO{
			Type:     n.Linked.Type,
			ObjectID: n.Linked.ObjectID,
			Object:   n.Linked.Object,
		}
	}
	return dto
}
