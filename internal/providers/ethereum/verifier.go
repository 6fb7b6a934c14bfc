package ethereum

import (
	"context"
	"fmt"

	"github.com/premintlabs/premintpool/internal/adapter"
	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/premint"
)

// ClaimVerifier checks an inclusion claim against chain state
//
//go:generate mockgen -source=verifier.go -destination=../../mocks/verifier.go -package=mocks -mock_names=ClaimVerifier=MockClaimVerifier
type ClaimVerifier interface {
	// VerifyClaim fetches the claimed transaction receipt and reports whether
	// it actually includes the given premint
	VerifyClaim(ctx context.Context, p premint.Premint, claim domain.InclusionClaim) (bool, error)
}

type ethVerifier struct {
	client adapter.EthClient
}

// NewVerifier creates a receipt-backed claim verifier
func NewVerifier(client adapter.EthClient) ClaimVerifier {
	return &ethVerifier{client: client}
}

func (v *ethVerifier) VerifyClaim(ctx context.Context, p premint.Premint, claim domain.InclusionClaim) (bool, error) {
	receipt, err := v.client.TransactionReceipt(ctx, claim.TxHash)
	if err != nil {
		return false, fmt.Errorf("failed to fetch receipt %s: %w", claim.TxHash.Hex(), err)
	}

	for _, log := range receipt.Logs {
		if log.Index != claim.LogIndex {
			continue
		}
		return p.VerifyClaim(claim, receipt, log), nil
	}

	return false, nil
}
