package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/premintlabs/premintpool/internal/adapter"
	"github.com/premintlabs/premintpool/internal/logger"
	"github.com/premintlabs/premintpool/internal/messaging"
	"github.com/premintlabs/premintpool/internal/premint"
)

// Config holds the configuration for the Ethereum subscription
type Config struct {
	WebSocketURL string // WebSocket URL (e.g., wss://rpc.zora.energy)
	ChainID      uint64
}

type ethSubscriber struct {
	client   adapter.EthClient
	chainID  uint64
	registry *premint.Registry
}

// NewSubscriber creates a new Ethereum inclusion event subscriber
func NewSubscriber(cfg Config, client adapter.EthClient, registry *premint.Registry) messaging.ClaimSubscriber {
	return &ethSubscriber{
		client:   client,
		chainID:  cfg.ChainID,
		registry: registry,
	}
}

// SubscribeClaims subscribes to the inclusion events of every registered
// premint kind and maps matching logs into claims
func (s *ethSubscriber) SubscribeClaims(ctx context.Context, fromBlock uint64, handler messaging.ClaimHandler) error {
	codecs := s.registry.Codecs()

	addresses := make([]common.Address, 0, len(codecs))
	signatures := make([]common.Hash, 0, len(codecs))
	byTopic := make(map[common.Hash]premint.Codec, len(codecs))
	for _, c := range codecs {
		addresses = append(addresses, c.ContractAddress())
		signatures = append(signatures, c.EventSignature())
		byTopic[c.EventSignature()] = c
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: addresses,
		Topics:    [][]common.Hash{signatures},
	}

	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from inclusion event logs")
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from inclusion event logs")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if vLog.Removed || len(vLog.Topics) == 0 {
				continue
			}

			codec, ok := byTopic[vLog.Topics[0]]
			if !ok {
				continue
			}

			claim, err := codec.MapClaim(s.chainID, vLog)
			if err != nil {
				logger.ErrorCtx(ctx, err,
					zap.String("message", "Error mapping log to claim"),
					zap.String("tx_hash", vLog.TxHash.Hex()),
					zap.Uint("log_index", vLog.Index))
				continue
			}

			if err := handler(&claim); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Error handling claim"))
			}
		}
	}
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
