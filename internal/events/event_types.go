package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactSubmitted EventType = "contact.submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a payload with an id and time.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Submission domain.ContactSubmission `json:"submission"`
}
