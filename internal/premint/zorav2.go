package premint

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/premintlabs/premintpool/internal/domain"
)

// ZoraPremintExecutorAddress is the Zora premint executor proxy. It is
// deployed at the same address on every supported chain.
var ZoraPremintExecutorAddress = common.HexToAddress("0x7777773606e7e46C8Ba8B98C08f5cD218e31d340")

// PremintedV2(address indexed contractAddress, uint256 indexed tokenId, bool indexed createdNewContract, uint32 uid, address minter, uint256 quantityMinted)
var premintedV2Signature = crypto.Keccak256Hash([]byte("PremintedV2(address,uint256,bool,uint32,address,uint256)"))

// non-indexed arguments of PremintedV2, in order: uid, minter, quantityMinted
var premintedV2DataArgs = abi.Arguments{
	{Name: "uid", Type: mustNewABIType("uint32")},
	{Name: "minter", Type: mustNewABIType("address")},
	{Name: "quantityMinted", Type: mustNewABIType("uint256")},
}

func mustNewABIType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid abi type %q: %v", t, err))
	}
	return typ
}

// ContractCreationConfig describes the collection a premint creates or joins
type ContractCreationConfig struct {
	ContractAdmin common.Address `json:"contractAdmin"`
	ContractURI   string         `json:"contractURI"`
	ContractName  string         `json:"contractName"`
}

// TokenCreationConfig describes the token a premint will mint.
// Field names follow the Zora contract ABI; they feed EIP-712 encoding and
// must not be renamed.
type TokenCreationConfig struct {
	TokenURI            string                `json:"tokenURI"`
	MaxSupply           *math.HexOrDecimal256 `json:"maxSupply"`
	MaxTokensPerAddress uint64                `json:"maxTokensPerAddress"`
	PricePerToken       *math.HexOrDecimal256 `json:"pricePerToken"` // uint96
	MintStart           uint64                `json:"mintStart"`
	MintDuration        uint64                `json:"mintDuration"`
	RoyaltyBPS          uint32                `json:"royaltyBPS"`
	PayoutRecipient     common.Address        `json:"payoutRecipient"`
	FixedPriceMinter    common.Address        `json:"fixedPriceMinter"`
	CreateReferral      common.Address        `json:"createReferral"`
}

// CreatorAttribution is the EIP-712 struct the creator signs
type CreatorAttribution struct {
	TokenConfig TokenCreationConfig `json:"tokenConfig"`
	UID         uint32              `json:"uid"`
	Version     uint32              `json:"version"`
	Deleted     bool                `json:"deleted"`
}

// ZoraPremintV2 is the Zora premint v2 payload, modelled after the
// PremintRequest API type
type ZoraPremintV2 struct {
	Collection        ContractCreationConfig `json:"collection"`
	Premint           CreatorAttribution     `json:"premint"`
	CollectionAddress common.Address         `json:"collectionAddress"`
	ChainID           uint64                 `json:"chainId"`
	Signature         string                 `json:"signature"`
}

// zoraV2GUID recreates the deterministic premint identifier:
// "{chainId}:{collectionAddress}:{uid}" with a lowercase address
func zoraV2GUID(chainID uint64, collection common.Address, uid uint32) string {
	return fmt.Sprintf("%d:%s:%d", chainID, strings.ToLower(collection.Hex()), uid)
}

// Metadata returns the flattened projection of the payload. Signer is the
// contract admin; Validate checks that the signature actually recovers to it.
func (p *ZoraPremintV2) Metadata() domain.PremintMetadata {
	return domain.PremintMetadata{
		ID:                zoraV2GUID(p.ChainID, p.CollectionAddress, p.Premint.UID),
		Kind:              domain.PremintKindZoraV2,
		Version:           uint64(p.Premint.Version),
		Signer:            strings.ToLower(p.Collection.ContractAdmin.Hex()),
		ChainID:           p.ChainID,
		CollectionAddress: strings.ToLower(p.CollectionAddress.Hex()),
		TokenID:           strconv.FormatUint(uint64(p.Premint.UID), 10),
		TokenURI:          p.Premint.TokenConfig.TokenURI,
	}
}

// Validate checks the payload fields and verifies the creator signature
func (p *ZoraPremintV2) Validate() error {
	switch {
	case p.ChainID == 0:
		return fmt.Errorf("%w: missing chainId", domain.ErrInvalidPremint)
	case p.CollectionAddress == (common.Address{}):
		return fmt.Errorf("%w: missing collectionAddress", domain.ErrInvalidPremint)
	case p.Collection.ContractAdmin == (common.Address{}):
		return fmt.Errorf("%w: missing collection.contractAdmin", domain.ErrInvalidPremint)
	case p.Premint.TokenConfig.TokenURI == "":
		return fmt.Errorf("%w: missing tokenConfig.tokenURI", domain.ErrInvalidPremint)
	case p.Premint.Deleted:
		return fmt.Errorf("%w: premint is marked deleted", domain.ErrInvalidPremint)
	case p.Signature == "":
		return fmt.Errorf("%w: missing signature", domain.ErrInvalidPremint)
	}

	signer, err := p.RecoverSigner()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPremint, err)
	}
	if signer != p.Collection.ContractAdmin {
		return fmt.Errorf("%w: signature recovers to %s, expected contract admin %s",
			domain.ErrInvalidPremint, signer.Hex(), p.Collection.ContractAdmin.Hex())
	}

	return nil
}

// RecoverSigner recovers the address that produced the EIP-712 creator
// attribution signature
func (p *ZoraPremintV2) RecoverSigner() (common.Address, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(p.Signature))
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}

	hash, _, err := apitypes.TypedDataAndHash(p.typedData())
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to hash typed data: %w", err)
	}

	// wallets produce legacy v values of 27/28, recovery wants 0/1
	normalized := make([]byte, 65)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}

	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// typedData builds the EIP-712 typed data for the creator attribution.
// Domain name "Preminter" and version "2" are fixed by the Zora contracts.
func (p *ZoraPremintV2) typedData() apitypes.TypedData {
	tc := p.Premint.TokenConfig

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"CreatorAttribution": {
				{Name: "tokenConfig", Type: "TokenCreationConfig"},
				{Name: "uid", Type: "uint32"},
				{Name: "version", Type: "uint32"},
				{Name: "deleted", Type: "bool"},
			},
			"TokenCreationConfig": {
				{Name: "tokenURI", Type: "string"},
				{Name: "maxSupply", Type: "uint256"},
				{Name: "maxTokensPerAddress", Type: "uint64"},
				{Name: "pricePerToken", Type: "uint96"},
				{Name: "mintStart", Type: "uint64"},
				{Name: "mintDuration", Type: "uint64"},
				{Name: "royaltyBPS", Type: "uint32"},
				{Name: "payoutRecipient", Type: "address"},
				{Name: "fixedPriceMinter", Type: "address"},
				{Name: "createReferral", Type: "address"},
			},
		},
		PrimaryType: "CreatorAttribution",
		Domain: apitypes.TypedDataDomain{
			Name:              "Preminter",
			Version:           "2",
			ChainId:           math.NewHexOrDecimal256(int64(p.ChainID)), //nolint:gosec
			VerifyingContract: p.CollectionAddress.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"tokenConfig": apitypes.TypedDataMessage{
				"tokenURI":            tc.TokenURI,
				"maxSupply":           bigOrZero(tc.MaxSupply),
				"maxTokensPerAddress": uintToHexOrDecimal(tc.MaxTokensPerAddress),
				"pricePerToken":       bigOrZero(tc.PricePerToken),
				"mintStart":           uintToHexOrDecimal(tc.MintStart),
				"mintDuration":        uintToHexOrDecimal(tc.MintDuration),
				"royaltyBPS":          uintToHexOrDecimal(uint64(tc.RoyaltyBPS)),
				"payoutRecipient":     tc.PayoutRecipient.Hex(),
				"fixedPriceMinter":    tc.FixedPriceMinter.Hex(),
				"createReferral":      tc.CreateReferral.Hex(),
			},
			"uid":     uintToHexOrDecimal(uint64(p.Premint.UID)),
			"version": uintToHexOrDecimal(uint64(p.Premint.Version)),
			"deleted": p.Premint.Deleted,
		},
	}
}

func bigOrZero(v *math.HexOrDecimal256) *math.HexOrDecimal256 {
	if v == nil {
		return math.NewHexOrDecimal256(0)
	}
	return v
}

func uintToHexOrDecimal(v uint64) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).SetUint64(v))
}

// VerifyClaim reports whether the claim is backed by the given receipt log.
// Every condition has to hold; a claim failing any of them is ignored.
func (p *ZoraPremintV2) VerifyClaim(claim domain.InclusionClaim, receipt *types.Receipt, log *types.Log) bool {
	event, err := decodePremintedV2(log)
	if err != nil {
		return false
	}

	conditions := []bool{
		log.Address == ZoraPremintExecutorAddress,
		log.TxHash == receipt.TxHash,
		claim.TxHash == receipt.TxHash,
		claim.LogIndex == log.Index,
		claim.PremintID == zoraV2GUID(claim.ChainID, event.ContractAddress, event.UID),
		claim.Kind == domain.PremintKindZoraV2,
		claim.ChainID == p.ChainID,
		p.CollectionAddress == event.ContractAddress,
		p.Premint.UID == event.UID,
	}

	for _, ok := range conditions {
		if !ok {
			return false
		}
	}
	return true
}

// premintedV2Event is the decoded PremintedV2 log
type premintedV2Event struct {
	ContractAddress    common.Address
	TokenID            *big.Int
	CreatedNewContract bool
	UID                uint32
	Minter             common.Address
	QuantityMinted     *big.Int
}

func decodePremintedV2(log *types.Log) (*premintedV2Event, error) {
	if len(log.Topics) != 4 {
		return nil, fmt.Errorf("expected 4 topics for PremintedV2, got %d", len(log.Topics))
	}
	if log.Topics[0] != premintedV2Signature {
		return nil, fmt.Errorf("log topic0 %s is not PremintedV2", log.Topics[0].Hex())
	}

	values, err := premintedV2DataArgs.Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack PremintedV2 data: %w", err)
	}

	uid, ok := values[0].(uint32)
	if !ok {
		return nil, fmt.Errorf("unexpected uid type %T", values[0])
	}
	minter, ok := values[1].(common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected minter type %T", values[1])
	}
	quantity, ok := values[2].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected quantityMinted type %T", values[2])
	}

	return &premintedV2Event{
		ContractAddress:    common.BytesToAddress(log.Topics[1].Bytes()),
		TokenID:            new(big.Int).SetBytes(log.Topics[2].Bytes()),
		CreatedNewContract: log.Topics[3] != (common.Hash{}),
		UID:                uid,
		Minter:             minter,
		QuantityMinted:     quantity,
	}, nil
}

// zoraV2Codec implements Codec for the Zora premint v2 kind
type zoraV2Codec struct{}

// NewZoraV2Codec creates the codec for zora_premint_v2 payloads
func NewZoraV2Codec() Codec {
	return &zoraV2Codec{}
}

func (zoraV2Codec) Kind() domain.PremintKind {
	return domain.PremintKindZoraV2
}

func (zoraV2Codec) Parse(payload []byte) (Premint, error) {
	var p ZoraPremintV2
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPremint, err)
	}
	return &p, nil
}

func (zoraV2Codec) ContractAddress() common.Address {
	return ZoraPremintExecutorAddress
}

func (zoraV2Codec) EventSignature() common.Hash {
	return premintedV2Signature
}

func (zoraV2Codec) MapClaim(chainID uint64, log types.Log) (domain.InclusionClaim, error) {
	event, err := decodePremintedV2(&log)
	if err != nil {
		return domain.InclusionClaim{}, err
	}

	return domain.InclusionClaim{
		PremintID:   zoraV2GUID(chainID, event.ContractAddress, event.UID),
		Kind:        domain.PremintKindZoraV2,
		ChainID:     chainID,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
		BlockNumber: log.BlockNumber,
	}, nil
}
