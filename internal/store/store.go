package store

import (
	"context"

	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/store/schema"
)

// InsertPremintInput carries a validated premint into the store. Metadata
// holds the flattened projection, JSON the authoritative document.
type InsertPremintInput struct {
	Metadata domain.PremintMetadata
	JSON     []byte
}

// PremintQueryFilter filters premint listings. Nil fields are ignored.
type PremintQueryFilter struct {
	Kind        *domain.PremintKind
	Signer      *string
	ChainID     *uint64
	SeenOnChain *bool
	Limit       int
	Offset      int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertPremint persists a new premint. Returns domain.ErrPremintExists
	// if a record with the same (kind, id) is already stored; re-submissions
	// never upsert.
	InsertPremint(ctx context.Context, input InsertPremintInput) error

	// GetPremint retrieves a premint by its composite key.
	// Returns domain.ErrPremintNotFound when no such record exists.
	GetPremint(ctx context.Context, kind domain.PremintKind, id string) (*schema.Premint, error)

	// MarkSeenOnChain flips seen_on_chain to true for the given premint.
	// Idempotent: marking an already-seen premint is a no-op success.
	// Returns domain.ErrPremintNotFound when no such record exists.
	MarkSeenOnChain(ctx context.Context, kind domain.PremintKind, id string) error

	// ListPremints retrieves premints matching the filter, newest first,
	// along with the total match count.
	ListPremints(ctx context.Context, filter PremintQueryFilter) ([]*schema.Premint, uint64, error)

	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chainID uint64) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chainID uint64, blockNumber uint64) error
}
