package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PremintKind discriminates the premint protocol/schema variant a payload
// conforms to. The kind decides how the raw JSON document is parsed, hashed
// and matched against on-chain events.
type PremintKind string

const (
	// PremintKindZoraV2 is the Zora premint v2 protocol (EIP-712 domain "Preminter", version "2")
	PremintKindZoraV2 PremintKind = "zora_premint_v2"
)

// IsValidKind reports whether the kind is one this node understands
func IsValidKind(kind PremintKind) bool {
	return kind == PremintKindZoraV2
}

// PremintMetadata is the flattened projection of a premint payload.
// The JSON document remains the authoritative representation; these fields
// are the denormalized columns persisted beside it for queryability.
type PremintMetadata struct {
	// ID is the kind-scoped premint identifier (e.g. "7777777:0xabc...:42" for Zora v2)
	ID string
	// Kind is the payload variant
	Kind PremintKind
	// Version is the schema version of the payload for this kind
	Version uint64
	// Signer is the address that authorized the premint
	Signer string
	// ChainID is the target chain
	ChainID uint64
	// CollectionAddress is the target collection, once known
	CollectionAddress string
	// TokenID is the token identifier as a decimal string. Kept as text because
	// identifiers may exceed 64-bit range (up to uint256 on EVM chains).
	TokenID string
	// TokenURI is the token metadata URI
	TokenURI string
}

// InclusionClaim asserts that a premint has been brought on chain by a
// specific transaction log. Produced by the chain watcher from raw logs.
type InclusionClaim struct {
	PremintID   string      `json:"premint_id"`
	Kind        PremintKind `json:"kind"`
	ChainID     uint64      `json:"chain_id"`
	TxHash      common.Hash `json:"tx_hash"`
	LogIndex    uint        `json:"log_index"`
	BlockNumber uint64      `json:"block_number"`
}

// PremintEventType is the lifecycle event type published to the message broker
type PremintEventType string

const (
	// PremintEventSubmitted is published when a premint is accepted into the pool
	PremintEventSubmitted PremintEventType = "premint.submitted"
	// PremintEventSeenOnChain is published when a premint is matched to a confirmed transaction
	PremintEventSeenOnChain PremintEventType = "premint.seen_on_chain"
)

// PremintEvent is the normalized premint lifecycle event published to NATS
type PremintEvent struct {
	EventID   string           `json:"event_id"` // ULID, unique per event
	Type      PremintEventType `json:"type"`
	Kind      PremintKind      `json:"kind"`
	PremintID string           `json:"premint_id"`
	ChainID   uint64           `json:"chain_id"`
	Signer    string           `json:"signer,omitempty"`
	TxHash    string           `json:"tx_hash,omitempty"` // set for seen_on_chain events
	Timestamp time.Time        `json:"timestamp"`
}
