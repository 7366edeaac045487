package service

import (
	"context"
	"time"
)

// SessionEventType names what happened to a session.
type SessionEventType string

const (
	SessionCreated SessionEventType = "session.created"
	SessionRevoked SessionEventType = "session.revoked"
)

// Login providers recorded on session events.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// SessionEvent is published whenever a session is created or revoked.
type SessionEvent struct {
	ID         string           `json:"id"`
	Type       SessionEventType `json:"type"`
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	UserID     string           `json:"user_id"`
	SessionID  string           `json:"session_id"`
	UserAgent  string           `json:"user_agent,omitempty"`
	Provider   string           `json:"provider,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishSessionEvent publishes a session lifecycle event.
	PublishSessionEvent(ctx context.Context, event *SessionEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
