package messaging

import (
	"context"

	"github.com/premintlabs/premintpool/internal/domain"
)

// Publisher defines the interface for publishing premint lifecycle events to
// the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishPremintEvent publishes a premint lifecycle event
	PublishPremintEvent(ctx context.Context, event *domain.PremintEvent) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the connection is closed
	CloseChan() <-chan struct{}
}
