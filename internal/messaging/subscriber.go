package messaging

import (
	"context"

	"github.com/premintlabs/premintpool/internal/domain"
)

// ClaimHandler is called for each inclusion claim decoded from chain logs
type ClaimHandler func(claim *domain.InclusionClaim) error

// ClaimSubscriber defines the interface for subscribing to on-chain premint
// inclusion events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=ClaimSubscriber=MockClaimSubscriber
type ClaimSubscriber interface {
	// SubscribeClaims subscribes to inclusion events starting at fromBlock
	// (0 for latest) and calls handler for each decoded claim
	SubscribeClaims(ctx context.Context, fromBlock uint64, handler ClaimHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
