package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/premintlabs/premintpool/internal/domain"
)

// Premint represents the premints table - one row per premint accepted into
// the pool, keyed by (kind, id).
//
// The JSON column is the authoritative representation of the premint; the
// flattened columns (signer, chain_id, token_id, ...) are projections of
// fields inside it, written together with the document. The store does not
// enforce cross-field consistency, the writer does.
type Premint struct {
	// ID is the kind-scoped premint identifier
	ID string `gorm:"column:id;primaryKey;not null;type:text"`
	// Kind discriminates the payload variant (e.g. "zora_premint_v2")
	Kind domain.PremintKind `gorm:"column:kind;primaryKey;not null;type:text"`
	// Version is the payload schema version for this kind
	Version uint64 `gorm:"column:version;not null"`
	// Signer is the address that authorized the premint
	Signer string `gorm:"column:signer;not null;type:text"`
	// ChainID is the target chain identifier
	ChainID uint64 `gorm:"column:chain_id;not null"`
	// CollectionAddress is the target collection once known
	CollectionAddress *string `gorm:"column:collection_address;type:text"`
	// TokenID is the token identifier as a decimal string (may exceed 64-bit range)
	TokenID *string `gorm:"column:token_id;type:text"`
	// TokenURI is the token metadata URI
	TokenURI *string `gorm:"column:token_uri;type:text"`
	// JSON is the canonical full payload, superset of the flattened columns
	JSON datatypes.JSON `gorm:"column:json;not null;type:jsonb"`
	// SeenOnChain is set once a chain watcher matched this premint to a confirmed transaction
	SeenOnChain bool `gorm:"column:seen_on_chain;not null;default:false"`
	// CreatedAt is server-assigned at insertion and immutable afterwards
	CreatedAt time.Time `gorm:"column:created_at;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Premint model
func (Premint) TableName() string {
	return "premints"
}
