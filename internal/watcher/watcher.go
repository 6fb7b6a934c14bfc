package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/premintlabs/premintpool/internal/adapter"
	"github.com/premintlabs/premintpool/internal/config"
	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/logger"
	"github.com/premintlabs/premintpool/internal/messaging"
	"github.com/premintlabs/premintpool/internal/premint"
	"github.com/premintlabs/premintpool/internal/providers/ethereum"
	"github.com/premintlabs/premintpool/internal/store"
)

// Config holds the configuration for the chain watcher
type Config struct {
	ChainID         uint64
	StartBlock      uint64
	InclusionMode   config.InclusionMode
	WorkerPoolSize  int
	WorkerQueueSize int
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Watcher defines the interface for the chain watcher
//
//go:generate mockgen -source=watcher.go -destination=../mocks/watcher.go -package=mocks -mock_names=Watcher=MockWatcher
type Watcher interface {
	// Run starts the chain watcher and blocks until the context is canceled
	// or an unrecoverable error occurs
	Run(ctx context.Context) error
	// Close closes the watcher and cleans up resources
	Close()
}

// watcher subscribes to inclusion events and marks matching pool premints as
// seen on chain
type watcher struct {
	subscriber messaging.ClaimSubscriber
	verifier   ethereum.ClaimVerifier
	publisher  messaging.Publisher
	store      store.Store
	registry   *premint.Registry
	config     Config
	clock      adapter.Clock
	pool       pond.Pool

	mu             sync.Mutex
	lastSavedBlock uint64
	lastSaveTime   time.Time
}

// NewWatcher creates a new chain watcher
func NewWatcher(
	sub messaging.ClaimSubscriber,
	verifier ethereum.ClaimVerifier,
	pub messaging.Publisher,
	st store.Store,
	registry *premint.Registry,
	cfg Config,
	clock adapter.Clock,
) Watcher {
	return &watcher{
		subscriber: sub,
		verifier:   verifier,
		publisher:  pub,
		store:      st,
		registry:   registry,
		config:     cfg,
		clock:      clock,
		pool:       pond.NewPool(cfg.WorkerPoolSize, pond.WithQueueSize(cfg.WorkerQueueSize)),
	}
}

// Run starts the chain watcher
func (w *watcher) Run(ctx context.Context) error {
	startBlock, err := w.resolveStartBlock(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.lastSaveTime = w.clock.Now()
	w.mu.Unlock()

	handler := func(claim *domain.InclusionClaim) error {
		c := *claim
		w.pool.Go(func() {
			w.resolveClaim(ctx, c)
		})

		w.maybeSaveCursor(ctx, c.BlockNumber)
		return nil
	}

	// The websocket subscription drops on provider restarts; retry with
	// exponential backoff and resume from the saved cursor.
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0

	for {
		logger.InfoCtx(ctx, "Starting inclusion event subscription",
			zap.Uint64("chain_id", w.config.ChainID),
			zap.Uint64("from_block", startBlock))

		err := w.subscriber.SubscribeClaims(ctx, startBlock, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Subscription dropped, reconnecting"))
		}

		wait := b.NextBackOff()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.clock.After(wait):
		}

		// Resume from wherever the cursor got to
		if cursor, err := w.store.GetBlockCursor(ctx, w.config.ChainID); err == nil && cursor > 0 {
			startBlock = cursor + 1
		}
	}
}

// resolveStartBlock determines the block to subscribe from: the configured
// block, else the saved cursor, else the chain head
func (w *watcher) resolveStartBlock(ctx context.Context) (uint64, error) {
	if w.config.StartBlock != 0 {
		logger.Info("Starting from configured block",
			zap.Uint64("chain_id", w.config.ChainID),
			zap.Uint64("block", w.config.StartBlock))
		return w.config.StartBlock, nil
	}

	lastBlock, err := w.store.GetBlockCursor(ctx, w.config.ChainID)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if lastBlock > 0 {
		logger.Info("Resuming from last processed block",
			zap.Uint64("chain_id", w.config.ChainID),
			zap.Uint64("block", lastBlock+1))
		return lastBlock + 1, nil
	}

	latestBlock, err := w.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.Info("Starting from latest block",
		zap.Uint64("chain_id", w.config.ChainID),
		zap.Uint64("block", latestBlock))
	return latestBlock, nil
}

// resolveClaim matches an inclusion claim against the pool and marks the
// premint as seen on chain
func (w *watcher) resolveClaim(ctx context.Context, claim domain.InclusionClaim) {
	record, err := w.store.GetPremint(ctx, claim.Kind, claim.PremintID)
	if err != nil {
		if errors.Is(err, domain.ErrPremintNotFound) {
			// Minted premint was never in our pool, nothing to mark
			logger.Debug("Claim for unknown premint",
				zap.String("kind", string(claim.Kind)),
				zap.String("premint_id", claim.PremintID))
			return
		}
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to load premint for claim"),
			zap.String("premint_id", claim.PremintID))
		return
	}

	if w.config.InclusionMode == config.InclusionModeVerify {
		p, err := w.registry.Parse(claim.Kind, record.JSON)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to parse stored premint"),
				zap.String("premint_id", claim.PremintID))
			return
		}

		ok, err := w.verifier.VerifyClaim(ctx, p, claim)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to verify claim"),
				zap.String("premint_id", claim.PremintID),
				zap.String("tx_hash", claim.TxHash.Hex()))
			return
		}
		if !ok {
			logger.Warn("Rejecting inclusion claim not backed by receipt",
				zap.String("premint_id", claim.PremintID),
				zap.String("tx_hash", claim.TxHash.Hex()),
				zap.Uint("log_index", claim.LogIndex))
			return
		}
	}

	if err := w.store.MarkSeenOnChain(ctx, claim.Kind, claim.PremintID); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to mark premint as seen"),
			zap.String("premint_id", claim.PremintID))
		return
	}

	logger.Info("Premint seen on chain",
		zap.String("kind", string(claim.Kind)),
		zap.String("premint_id", claim.PremintID),
		zap.String("tx_hash", claim.TxHash.Hex()))

	event := &domain.PremintEvent{
		EventID:   ulid.Make().String(),
		Type:      domain.PremintEventSeenOnChain,
		Kind:      claim.Kind,
		PremintID: claim.PremintID,
		ChainID:   claim.ChainID,
		Signer:    record.Signer,
		TxHash:    claim.TxHash.Hex(),
		Timestamp: w.clock.Now(),
	}
	if err := w.publisher.PublishPremintEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to publish seen event"),
			zap.String("premint_id", claim.PremintID))
	}
}

// maybeSaveCursor persists the block cursor every N blocks or N seconds
func (w *watcher) maybeSaveCursor(ctx context.Context, blockNumber uint64) {
	w.mu.Lock()
	shouldSave := blockNumber >= w.lastSavedBlock+w.config.CursorSaveFreq ||
		w.clock.Since(w.lastSaveTime) >= w.config.CursorSaveDelay
	w.mu.Unlock()

	if !shouldSave {
		return
	}

	if err := w.store.SetBlockCursor(ctx, w.config.ChainID, blockNumber); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save block cursor"))
		return
	}

	w.mu.Lock()
	w.lastSavedBlock = blockNumber
	w.lastSaveTime = w.clock.Now()
	w.mu.Unlock()
}

// Close closes the watcher and cleans up resources
func (w *watcher) Close() {
	w.pool.StopAndWait()
	w.subscriber.Close()
}
