package rest

import (
	"encoding/json"
	"time"

	"github.com/premintlabs/premintpool/internal/store/schema"
)

// SubmitPremintRequest is the body of POST /api/v1/premints. Payload carries
// the raw premint document, passed through untouched to kind-specific parsing.
type SubmitPremintRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// PremintDTO is the API representation of a stored premint
type PremintDTO struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	Version           uint64          `json:"version"`
	Signer            string          `json:"signer"`
	ChainID           uint64          `json:"chain_id"`
	CollectionAddress *string         `json:"collection_address,omitempty"`
	TokenID           *string         `json:"token_id,omitempty"`
	TokenURI          *string         `json:"token_uri,omitempty"`
	Payload           json.RawMessage `json:"payload"`
	SeenOnChain       bool            `json:"seen_on_chain"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ListPremintsResponse is the body of GET /api/v1/premints
type ListPremintsResponse struct {
	Premints []*PremintDTO `json:"premints"`
	Total    uint64        `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// toPremintDTO maps a stored premint row to its API representation
func toPremintDTO(record *schema.Premint) *PremintDTO {
	return &PremintDTO{
		ID:                record.ID,
		Kind:              string(record.Kind),
		Version:           record.Version,
		Signer:            record.Signer,
		ChainID:           record.ChainID,
		CollectionAddress: record.CollectionAddress,
		TokenID:           record.TokenID,
		TokenURI:          record.TokenURI,
		Payload:           json.RawMessage(record.JSON),
		SeenOnChain:       record.SeenOnChain,
		CreatedAt:         record.CreatedAt,
	}
}
