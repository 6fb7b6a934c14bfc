package premint

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"

	"github.com/premintlabs/premintpool/internal/domain"
)

// Premint is a parsed premint payload of some kind. Implementations project
// the flattened metadata, validate themselves, and check inclusion claims
// against receipts fetched from the chain.
type Premint interface {
	// Metadata returns the flattened projection persisted beside the payload
	Metadata() domain.PremintMetadata
	// Validate checks the payload, including signature recovery
	Validate() error
	// VerifyClaim reports whether the claim is backed by the given receipt log
	VerifyClaim(claim domain.InclusionClaim, receipt *types.Receipt, log *types.Log) bool
}

// Codec parses payloads and maps on-chain logs for one premint kind
type Codec interface {
	// Kind returns the payload variant this codec handles
	Kind() domain.PremintKind
	// Parse decodes a raw JSON payload
	Parse(payload []byte) (Premint, error)
	// ContractAddress returns the contract emitting inclusion events for this kind
	ContractAddress() common.Address
	// EventSignature returns the topic0 of the inclusion event
	EventSignature() common.Hash
	// MapClaim converts a raw log into an inclusion claim
	MapClaim(chainID uint64, log types.Log) (domain.InclusionClaim, error)
}

// Registry resolves premint kinds to their codecs
type Registry struct {
	codecs map[domain.PremintKind]Codec
}

// NewRegistry creates a registry with the default codecs registered
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[domain.PremintKind]Codec)}
	r.Register(NewZoraV2Codec())
	return r
}

// Register adds a codec, replacing any existing codec for the same kind
func (r *Registry) Register(c Codec) {
	r.codecs[c.Kind()] = c
}

// Codec returns the codec for a kind, or domain.ErrUnknownKind
func (r *Registry) Codec(kind domain.PremintKind) (Codec, error) {
	c, ok := r.codecs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return c, nil
}

// Parse decodes a raw payload for the given kind
func (r *Registry) Parse(kind domain.PremintKind, payload []byte) (Premint, error) {
	c, err := r.Codec(kind)
	if err != nil {
		return nil, err
	}
	return c.Parse(payload)
}

// Codecs returns all registered codecs
func (r *Registry) Codecs() []Codec {
	out := make([]Codec, 0, len(r.codecs))
	for _, c := range r.codecs {
		out = append(out, c)
	}
	return out
}

// PayloadHash returns the keccak256 digest of the JCS-canonicalized payload.
// Canonicalization makes the hash invariant under key ordering and
// insignificant whitespace, so identical premints hash identically no matter
// which peer serialized them.
func PayloadHash(payload []byte) (common.Hash, error) {
	canonical, err := jcs.Transform(payload)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to canonicalize payload: %w", err)
	}
	return crypto.Keccak256Hash(canonical), nil
}
