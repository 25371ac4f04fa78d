// Package events emits product-analytics events. Nothing is persisted
// by this service itself.
package events

import (
	"log/slog"
	"strconv"

	"github.com/posthog/posthog-go"
)

const EventAccountDeleted = "account_deleted"

// Service forwards events to PostHog. A nil client makes every method
// a no-op, so deployments without analytics need no special casing.
type Service struct {
	client posthog.Client
}

// NewService creates a new Service. client may be nil.
func NewService(client posthog.Client) *Service {
	return &Service{client: client}
}

// AccountDeleted reports that an account and its data are gone. The
// deleted account's numeric id is the only identifying property sent.
func (s *Service) AccountDeleted(accountID int64) {
	if s == nil || s.client == nil {
		return
	}

	err := s.client.Enqueue(posthog.Capture{
		DistinctId: strconv.FormatInt(accountID, 10),
		Event:      EventAccountDeleted,
	})
	if err != nil {
		slog.Error("failed to enqueue analytics event", "event", EventAccountDeleted, "error", err)
	}
}

// Close flushes pending events.
func (s *Service) Close() {
	if s == nil || s.client == nil {
		return
	}

	if err := s.client.Close(); err != nil {
		slog.Error("failed to close analytics client", "error", err)
	}
}
