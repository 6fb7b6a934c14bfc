package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premintlabs/premintpool/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestPremint creates a test premint input for the given collection and uid
func buildTestPremint(chainID uint64, collection string, uid uint32) InsertPremintInput {
	id := fmt.Sprintf("%d:%s:%d", chainID, collection, uid)
	payload := map[string]interface{}{
		"collectionAddress": collection,
		"chainId":           chainID,
		"premint": map[string]interface{}{
			"uid":     uid,
			"version": 1,
			"tokenConfig": map[string]interface{}{
				"tokenURI": fmt.Sprintf("ipfs://token-%d", uid),
			},
		},
		"signature": "0xsig",
	}
	raw, _ := json.Marshal(payload)

	tokenID := fmt.Sprintf("%d", uid)
	tokenURI := fmt.Sprintf("ipfs://token-%d", uid)
	return InsertPremintInput{
		Metadata: domain.PremintMetadata{
			ID:                id,
			Kind:              domain.PremintKindZoraV2,
			Version:           1,
			Signer:            "0x1234567890123456789012345678901234567890",
			ChainID:           chainID,
			CollectionAddress: collection,
			TokenID:           tokenID,
			TokenURI:          tokenURI,
		},
		JSON: raw,
	}
}

// =============================================================================
// Test: InsertPremint / GetPremint
// =============================================================================

func testInsertAndGetPremint(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("insert and retrieve round trip", func(t *testing.T) {
		input := buildTestPremint(7777777, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 1)

		err := store.InsertPremint(ctx, input)
		require.NoError(t, err)

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, input.Metadata.ID, record.ID)
		assert.Equal(t, domain.PremintKindZoraV2, record.Kind)
		assert.Equal(t, uint64(1), record.Version)
		assert.Equal(t, input.Metadata.Signer, record.Signer)
		assert.Equal(t, uint64(7777777), record.ChainID)
		require.NotNil(t, record.CollectionAddress)
		assert.Equal(t, input.Metadata.CollectionAddress, *record.CollectionAddress)
		require.NotNil(t, record.TokenID)
		assert.Equal(t, "1", *record.TokenID)
		require.NotNil(t, record.TokenURI)
		assert.Equal(t, "ipfs://token-1", *record.TokenURI)
		assert.False(t, record.SeenOnChain)
		assert.False(t, record.CreatedAt.IsZero())

		// Stored document survives as semantically equal JSON
		var stored, original map[string]interface{}
		require.NoError(t, json.Unmarshal(record.JSON, &stored))
		require.NoError(t, json.Unmarshal(input.JSON, &original))
		assert.Equal(t, original, stored)
	})

	t.Run("token id beyond uint64 range survives round trip", func(t *testing.T) {
		input := buildTestPremint(1, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 2)
		// 2^68, not representable as uint64
		bigTokenID := "295147905179352825856"
		input.Metadata.TokenID = bigTokenID

		err := store.InsertPremint(ctx, input)
		require.NoError(t, err)

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		require.NotNil(t, record.TokenID)
		assert.Equal(t, bigTokenID, *record.TokenID)
	})

	t.Run("optional columns stay null when projection is empty", func(t *testing.T) {
		input := buildTestPremint(1, "0xcccccccccccccccccccccccccccccccccccccccc", 3)
		input.Metadata.CollectionAddress = ""
		input.Metadata.TokenID = ""
		input.Metadata.TokenURI = ""

		err := store.InsertPremint(ctx, input)
		require.NoError(t, err)

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		assert.Nil(t, record.CollectionAddress)
		assert.Nil(t, record.TokenID)
		assert.Nil(t, record.TokenURI)
	})

	t.Run("get non-existent premint returns not found", func(t *testing.T) {
		_, err := store.GetPremint(ctx, domain.PremintKindZoraV2, "7777777:0xdoesnotexist:1")
		assert.ErrorIs(t, err, domain.ErrPremintNotFound)
	})
}

func testInsertPremintDuplicate(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("duplicate insert is rejected and original preserved", func(t *testing.T) {
		input := buildTestPremint(7777777, "0xdddddddddddddddddddddddddddddddddddddddd", 1)
		require.NoError(t, store.InsertPremint(ctx, input))

		// Same (kind, id) with a different document must not overwrite
		dup := input
		dup.Metadata.Signer = "0x9999999999999999999999999999999999999999"
		dup.JSON = []byte(`{"tampered":true}`)

		err := store.InsertPremint(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrPremintExists)

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		assert.Equal(t, input.Metadata.Signer, record.Signer)
	})

	t.Run("same id under different kind would be distinct", func(t *testing.T) {
		// The key is (kind, id); with only one kind registered the composite
		// key still enforces uniqueness per kind in the schema
		input := buildTestPremint(7777777, "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", 2)
		require.NoError(t, store.InsertPremint(ctx, input))

		err := store.InsertPremint(ctx, input)
		assert.ErrorIs(t, err, domain.ErrPremintExists)
	})
}

func testInsertPremintValidation(t *testing.T, store Store) {
	ctx := context.Background()

	base := buildTestPremint(1, "0xffffffffffffffffffffffffffffffffffffffff", 9)

	t.Run("missing id", func(t *testing.T) {
		input := base
		input.Metadata.ID = ""
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})

	t.Run("missing kind", func(t *testing.T) {
		input := base
		input.Metadata.Kind = ""
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})

	t.Run("missing signer", func(t *testing.T) {
		input := base
		input.Metadata.Signer = ""
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})

	t.Run("missing chain id", func(t *testing.T) {
		input := base
		input.Metadata.ChainID = 0
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})

	t.Run("missing payload", func(t *testing.T) {
		input := base
		input.JSON = nil
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})

	t.Run("malformed payload", func(t *testing.T) {
		input := base
		input.JSON = []byte(`{"broken":`)
		assert.ErrorIs(t, store.InsertPremint(ctx, input), domain.ErrInvalidPremint)
	})
}

// =============================================================================
// Test: MarkSeenOnChain
// =============================================================================

func testMarkSeenOnChain(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("marks premint as seen", func(t *testing.T) {
		input := buildTestPremint(7777777, "0x1111111111111111111111111111111111111111", 1)
		require.NoError(t, store.InsertPremint(ctx, input))

		err := store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		assert.True(t, record.SeenOnChain)
	})

	t.Run("marking twice is idempotent", func(t *testing.T) {
		input := buildTestPremint(7777777, "0x2222222222222222222222222222222222222222", 2)
		require.NoError(t, store.InsertPremint(ctx, input))

		require.NoError(t, store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, input.Metadata.ID))
		require.NoError(t, store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, input.Metadata.ID))

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		assert.True(t, record.SeenOnChain)
	})

	t.Run("marking non-existent premint returns not found", func(t *testing.T) {
		err := store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, "7777777:0xmissing:1")
		assert.ErrorIs(t, err, domain.ErrPremintNotFound)
	})

	t.Run("mark does not touch other columns", func(t *testing.T) {
		input := buildTestPremint(7777777, "0x3333333333333333333333333333333333333333", 3)
		require.NoError(t, store.InsertPremint(ctx, input))

		require.NoError(t, store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, input.Metadata.ID))

		record, err := store.GetPremint(ctx, domain.PremintKindZoraV2, input.Metadata.ID)
		require.NoError(t, err)
		assert.Equal(t, input.Metadata.Signer, record.Signer)

		var stored, original map[string]interface{}
		require.NoError(t, json.Unmarshal(record.JSON, &stored))
		require.NoError(t, json.Unmarshal(input.JSON, &original))
		assert.Equal(t, original, stored)
	})
}

// =============================================================================
// Test: ListPremints
// =============================================================================

func testListPremints(t *testing.T, store Store) {
	ctx := context.Background()

	// Seed: 3 premints on chain 7777777 by signer A, 2 on chain 1 by signer B,
	// one of which gets marked as seen
	signerA := "0x1234567890123456789012345678901234567890"
	signerB := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	for i := uint32(1); i <= 3; i++ {
		input := buildTestPremint(7777777, "0x4444444444444444444444444444444444444444", i)
		require.NoError(t, store.InsertPremint(ctx, input))
	}
	var seenID string
	for i := uint32(1); i <= 2; i++ {
		input := buildTestPremint(1, "0x5555555555555555555555555555555555555555", i)
		input.Metadata.Signer = signerB
		require.NoError(t, store.InsertPremint(ctx, input))
		if i == 1 {
			seenID = input.Metadata.ID
		}
	}
	require.NoError(t, store.MarkSeenOnChain(ctx, domain.PremintKindZoraV2, seenID))

	t.Run("no filter returns everything", func(t *testing.T) {
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		assert.Len(t, records, 5)
	})

	t.Run("filter by chain id", func(t *testing.T) {
		chainID := uint64(7777777)
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{ChainID: &chainID})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		for _, r := range records {
			assert.Equal(t, chainID, r.ChainID)
		}
	})

	t.Run("filter by signer", func(t *testing.T) {
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{Signer: &signerB})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		for _, r := range records {
			assert.Equal(t, signerB, r.Signer)
		}

		_, total, err = store.ListPremints(ctx, PremintQueryFilter{Signer: &signerA})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
	})

	t.Run("filter by seen on chain", func(t *testing.T) {
		seen := true
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{SeenOnChain: &seen})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, seenID, records[0].ID)

		unseen := false
		_, total, err = store.ListPremints(ctx, PremintQueryFilter{SeenOnChain: &unseen})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
	})

	t.Run("filter by kind", func(t *testing.T) {
		kind := domain.PremintKindZoraV2
		_, total, err := store.ListPremints(ctx, PremintQueryFilter{Kind: &kind})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)

		other := domain.PremintKind("unknown_kind")
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{Kind: &other})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Empty(t, records)
	})

	t.Run("pagination keeps total stable", func(t *testing.T) {
		records, total, err := store.ListPremints(ctx, PremintQueryFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		assert.Len(t, records, 2)

		records, total, err = store.ListPremints(ctx, PremintQueryFilter{Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		assert.Len(t, records, 1)
	})
}

// =============================================================================
// Test: BlockCursor
// =============================================================================

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("cursor for unknown chain is zero", func(t *testing.T) {
		block, err := store.GetBlockCursor(ctx, 424242)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)
	})

	t.Run("set and get cursor", func(t *testing.T) {
		require.NoError(t, store.SetBlockCursor(ctx, 7777777, 12345))

		block, err := store.GetBlockCursor(ctx, 7777777)
		require.NoError(t, err)
		assert.Equal(t, uint64(12345), block)
	})

	t.Run("cursor overwrite", func(t *testing.T) {
		require.NoError(t, store.SetBlockCursor(ctx, 8453, 100))
		require.NoError(t, store.SetBlockCursor(ctx, 8453, 200))

		block, err := store.GetBlockCursor(ctx, 8453)
		require.NoError(t, err)
		assert.Equal(t, uint64(200), block)
	})

	t.Run("cursors are per chain", func(t *testing.T) {
		require.NoError(t, store.SetBlockCursor(ctx, 1, 111))
		require.NoError(t, store.SetBlockCursor(ctx, 10, 222))

		block, err := store.GetBlockCursor(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(111), block)

		block, err = store.GetBlockCursor(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(222), block)
	})
}

// =============================================================================
// Test Runner
// =============================================================================

// RunStoreTests runs the store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"InsertAndGetPremint", testInsertAndGetPremint},
		{"InsertPremintDuplicate", testInsertPremintDuplicate},
		{"InsertPremintValidation", testInsertPremintValidation},
		{"MarkSeenOnChain", testMarkSeenOnChain},
		{"ListPremints", testListPremints},
		{"BlockCursor", testBlockCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
