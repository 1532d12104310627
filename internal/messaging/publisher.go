package messaging

import (
	"context"

	"github.com/openmotors/car-ledger-api/internal/domain"
)

// Publisher defines the interface for publishing marketplace events to a
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a marketplace event
	PublishEvent(ctx context.Context, event *domain.MarketEvent) error
	// Close closes the connection
	Close()
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishEvent(ctx context.Context, event *domain.MarketEvent) error {
	return nil
}

func (p *NoopPublisher) Close() {}
