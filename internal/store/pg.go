package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	// database/sql treats MaxIdleConns > MaxOpenConns as MaxOpenConns anyway
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// validateInsertInput checks the required fields of an insert before it
// touches the database. The store validates presence only; cross-field
// consistency between the document and the projection is the writer's job.
func validateInsertInput(input InsertPremintInput) error {
	m := input.Metadata
	switch {
	case m.ID == "":
		return fmt.Errorf("%w: missing id", domain.ErrInvalidPremint)
	case m.Kind == "":
		return fmt.Errorf("%w: missing kind", domain.ErrInvalidPremint)
	case m.Signer == "":
		return fmt.Errorf("%w: missing signer", domain.ErrInvalidPremint)
	case m.ChainID == 0:
		return fmt.Errorf("%w: missing chain_id", domain.ErrInvalidPremint)
	case len(input.JSON) == 0:
		return fmt.Errorf("%w: missing json payload", domain.ErrInvalidPremint)
	}

	if !json.Valid(input.JSON) {
		return fmt.Errorf("%w: malformed json payload", domain.ErrInvalidPremint)
	}

	return nil
}

// InsertPremint persists a new premint row. Concurrent duplicate inserts race
// on the (kind, id) primary key; exactly one wins, the rest observe
// domain.ErrPremintExists.
func (s *pgStore) InsertPremint(ctx context.Context, input InsertPremintInput) error {
	if err := validateInsertInput(input); err != nil {
		return err
	}

	m := input.Metadata
	row := schema.Premint{
		ID:      m.ID,
		Kind:    m.Kind,
		Version: m.Version,
		Signer:  m.Signer,
		ChainID: m.ChainID,
		JSON:    input.JSON,
	}
	if m.CollectionAddress != "" {
		row.CollectionAddress = &m.CollectionAddress
	}
	if m.TokenID != "" {
		row.TokenID = &m.TokenID
	}
	if m.TokenURI != "" {
		row.TokenURI = &m.TokenURI
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to insert premint: %w", res.Error)
	}

	// DO NOTHING swallows the key conflict; zero rows affected means the
	// (kind, id) pair was already present.
	if res.RowsAffected == 0 {
		return domain.ErrPremintExists
	}

	return nil
}

// GetPremint retrieves a premint by its composite key
func (s *pgStore) GetPremint(ctx context.Context, kind domain.PremintKind, id string) (*schema.Premint, error) {
	var premint schema.Premint
	err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", string(kind), id).
		First(&premint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPremintNotFound
		}
		return nil, fmt.Errorf("failed to get premint: %w", err)
	}

	return &premint, nil
}

// MarkSeenOnChain flips seen_on_chain to true for the given premint
func (s *pgStore) MarkSeenOnChain(ctx context.Context, kind domain.PremintKind, id string) error {
	res := s.db.WithContext(ctx).
		Model(&schema.Premint{}).
		Where("kind = ? AND id = ?", string(kind), id).
		Update("seen_on_chain", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark premint seen on chain: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return domain.ErrPremintNotFound
	}

	return nil
}

// ListPremints retrieves premints matching the filter, newest first
func (s *pgStore) ListPremints(ctx context.Context, filter PremintQueryFilter) ([]*schema.Premint, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Premint{})

	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Signer != nil {
		query = query.Where("signer = ?", *filter.Signer)
	}
	if filter.ChainID != nil {
		query = query.Where("chain_id = ?", *filter.ChainID)
	}
	if filter.SeenOnChain != nil {
		query = query.Where("seen_on_chain = ?", *filter.SeenOnChain)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count premints: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var premints []*schema.Premint
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&premints).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list premints: %w", err)
	}

	return premints, uint64(total), nil
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chainID uint64) (uint64, error) {
	key := fmt.Sprintf("block_cursor:%d", chainID)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // no cursor yet
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chainID uint64, blockNumber uint64) error {
	kv := schema.KeyValueStore{
		Key:       fmt.Sprintf("block_cursor:%d", chainID),
		Value:     strconv.FormatUint(blockNumber, 10),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
