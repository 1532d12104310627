package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

const (
	testOwnerAddress = "0x1111111111111111111111111111111111111111"
	testBuyerAddress = "0x2222222222222222222222222222222222222222"
	testOtherAddress = "0x3333333333333333333333333333333333333333"
)

// buildTestListing creates a test car listing row
func buildTestListing(tokenID uint64, owner string) *schema.CarListing {
	return &schema.CarListing{
		TokenID:         tokenID,
		Owner:           owner,
		Seller:          owner,
		Title:           fmt.Sprintf("Test Car %d", tokenID),
		Price:           decimal.RequireFromString("1.5"),
		Category:        "SUV",
		Condition:       string(domain.ConditionUsed),
		CreatedDate:     "2025-06-01",
		Description:     "A test car",
		ImagePath:       fmt.Sprintf("uploads/car-%d.jpg", tokenID),
		CurrentlyListed: true,
	}
}

// buildTestTransaction creates a test transaction row
func buildTestTransaction(tokenID uint64, buyer, seller string, date time.Time) *schema.Transaction {
	return &schema.Transaction{
		TokenID:         tokenID,
		Buyer:           buyer,
		Seller:          seller,
		Price:           decimal.RequireFromString("1.5"),
		TransactionType: domain.TransactionTypeTransfer,
		Raw:             datatypes.JSON([]byte(`{"tx_hash":"0xabc"}`)),
		TransactionDate: date,
	}
}

func testInsertAndGetListing(t *testing.T, s Store) {
	ctx := context.Background()

	listing := buildTestListing(1, testOwnerAddress)
	require.NoError(t, s.InsertListing(ctx, listing))

	got, err := s.GetListing(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(1), got.TokenID)
	assert.Equal(t, testOwnerAddress, got.Owner)
	assert.Equal(t, testOwnerAddress, got.Seller)
	assert.Equal(t, "Test Car 1", got.Title)
	assert.True(t, decimal.RequireFromString("1.5").Equal(got.Price))
	assert.True(t, got.CurrentlyListed)
}

func testGetMissingListing(t *testing.T, s Store) {
	ctx := context.Background()

	got, err := s.GetListing(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testInsertListingIdempotent(t *testing.T, s Store) {
	ctx := context.Background()

	listing := buildTestListing(2, testOwnerAddress)
	require.NoError(t, s.InsertListing(ctx, listing))

	// A retry after a partial failure re-sends the same row; the duplicate
	// insert is a no-op, not an error.
	retry := buildTestListing(2, testOwnerAddress)
	retry.Title = "Changed Title"
	require.NoError(t, s.InsertListing(ctx, retry))

	got, err := s.GetListing(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Car 2", got.Title)
}

func testListListings(t *testing.T, s Store) {
	ctx := context.Background()

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, s.InsertListing(ctx, buildTestListing(i, testOwnerAddress)))
	}

	listings, err := s.ListListings(ctx)
	require.NoError(t, err)
	assert.Len(t, listings, 3)
}

func testUpdateOwnership(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.InsertListing(ctx, buildTestListing(4, testOwnerAddress)))

	require.NoError(t, s.UpdateOwnership(ctx, 4, testBuyerAddress, testBuyerAddress, false))

	got, err := s.GetListing(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testBuyerAddress, got.Owner)
	assert.Equal(t, testBuyerAddress, got.Seller)
	assert.False(t, got.CurrentlyListed)

	// Repeating the update with identical arguments converges to the same row.
	require.NoError(t, s.UpdateOwnership(ctx, 4, testBuyerAddress, testBuyerAddress, false))

	got, err = s.GetListing(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, testBuyerAddress, got.Owner)
	assert.False(t, got.CurrentlyListed)
}

func testUpdateOwnershipMissingRow(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.UpdateOwnership(ctx, 999, testBuyerAddress, testBuyerAddress, false)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func testUpdateListed(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.InsertListing(ctx, buildTestListing(5, testOwnerAddress)))

	require.NoError(t, s.UpdateListed(ctx, 5, false))

	got, err := s.GetListing(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.CurrentlyListed)
	// Ownership is untouched by a delist.
	assert.Equal(t, testOwnerAddress, got.Owner)
	assert.Equal(t, testOwnerAddress, got.Seller)

	err = s.UpdateListed(ctx, 999, false)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func testUserLinks(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.InsertUserLink(ctx, 6, testOwnerAddress))
	// The link table is append-only; a second mint-event row is fine.
	require.NoError(t, s.InsertUserLink(ctx, 7, testOwnerAddress))
}

func testQueryByOwnerOrSeller(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.InsertListing(ctx, buildTestListing(10, testOwnerAddress)))
	require.NoError(t, s.InsertListing(ctx, buildTestListing(11, testOtherAddress)))

	// A sold car where the queried identity remains the seller of record.
	sold := buildTestListing(12, testOwnerAddress)
	require.NoError(t, s.InsertListing(ctx, sold))
	require.NoError(t, s.UpdateOwnership(ctx, 12, testBuyerAddress, testOwnerAddress, false))

	listings, err := s.QueryByOwnerOrSeller(ctx, testOwnerAddress)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	tokenIDs := []uint64{listings[0].TokenID, listings[1].TokenID}
	assert.Contains(t, tokenIDs, uint64(10))
	assert.Contains(t, tokenIDs, uint64(12))

	listings, err = s.QueryByOwnerOrSeller(ctx, testBuyerAddress)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, uint64(12), listings[0].TokenID)
}

func testTransactions(t *testing.T, s Store) {
	ctx := context.Background()

	older := buildTestTransaction(20, testBuyerAddress, testOwnerAddress, time.Now().UTC().Add(-time.Hour))
	newer := buildTestTransaction(21, testBuyerAddress, testOtherAddress, time.Now().UTC())
	require.NoError(t, s.InsertTransaction(ctx, older))
	require.NoError(t, s.InsertTransaction(ctx, newer))

	// The buyer sees both of their purchases, newest first.
	txs, err := s.QueryTransactions(ctx, testBuyerAddress)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, uint64(21), txs[0].TokenID)
	assert.Equal(t, uint64(20), txs[1].TokenID)

	// The seller side of the match works too.
	txs, err = s.QueryTransactions(ctx, testOwnerAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, uint64(20), txs[0].TokenID)

	// An uninvolved identity sees nothing.
	txs, err = s.QueryTransactions(ctx, "0x4444444444444444444444444444444444444444")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

// RunStoreTests runs all store tests against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"InsertAndGetListing", testInsertAndGetListing},
		{"GetMissingListing", testGetMissingListing},
		{"InsertListingIdempotent", testInsertListingIdempotent},
		{"ListListings", testListListings},
		{"UpdateOwnership", testUpdateOwnership},
		{"UpdateOwnershipMissingRow", testUpdateOwnershipMissingRow},
		{"UpdateListed", testUpdateListed},
		{"UserLinks", testUserLinks},
		{"QueryByOwnerOrSeller", testQueryByOwnerOrSeller},
		{"Transactions", testTransactions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, s)
		})
	}
}
