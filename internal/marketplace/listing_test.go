package marketplace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmotors/car-ledger-api/internal/config"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/marketplace"
	"github.com/openmotors/car-ledger-api/internal/mocks"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

const (
	testSellerAddress = "0x1111111111111111111111111111111111111111"
	testBuyerAddress  = "0x2222222222222222222222222222222222222222"
)

// testRetryConfig keeps backoff tight so failure paths finish quickly
var testRetryConfig = config.RetryConfig{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsedTime:  50 * time.Millisecond,
}

// testListingMocks contains all the mocks needed for testing the listing service
type testListingMocks struct {
	ctrl      *gomock.Controller
	ledger    *mocks.MockLedger
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	service   *marketplace.ListingService
}

// setupTestListing creates all the mocks and the listing service for testing
func setupTestListing(t *testing.T) *testListingMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testListingMocks{
		ctrl:      ctrl,
		ledger:    mocks.NewMockLedger(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	tm.clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	tm.service = marketplace.NewListingService(
		tm.ledger,
		tm.store,
		tm.publisher,
		tm.clock,
		testRetryConfig,
	)

	return tm
}

// tearDownTestListing cleans up the test mocks
func tearDownTestListing(mocks *testListingMocks) {
	mocks.ctrl.Finish()
}

func validDescriptor() domain.ListingDescriptor {
	return domain.ListingDescriptor{
		Title:       "2019 Honda CR-V",
		Price:       decimal.RequireFromString("1.5"),
		Category:    "SUV",
		Condition:   domain.ConditionUsed,
		CreatedDate: "2025-06-01",
		Description: "Single owner, full service history",
		ImagePath:   "uploads/crv.jpg",
	}
}

func TestListingService_CreateListing_Success(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	ctx := context.Background()
	seller := domain.Identity(testSellerAddress)
	descriptor := validDescriptor()
	receipt := &domain.Receipt{TxHash: "0xabc", BlockNumber: 100, GasUsed: 21000}

	tm.ledger.EXPECT().
		Mint(gomock.Any(), descriptor.Price).
		Return(uint64(7), receipt, nil)

	tm.store.EXPECT().
		InsertListing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *schema.CarListing) error {
			assert.Equal(t, uint64(7), row.TokenID)
			assert.Equal(t, testSellerAddress, row.Owner)
			assert.Equal(t, testSellerAddress, row.Seller)
			assert.Equal(t, descriptor.Title, row.Title)
			assert.True(t, row.CurrentlyListed)
			return nil
		})

	tm.store.EXPECT().
		InsertUserLink(gomock.Any(), uint64(7), testSellerAddress).
		Return(nil)

	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.MarketEvent) error {
			assert.Equal(t, domain.EventTypeListingCreated, event.EventType)
			assert.Equal(t, uint64(7), event.TokenID)
			assert.Equal(t, testSellerAddress, event.Seller)
			assert.NotEmpty(t, event.EventID)
			return nil
		})

	tokenID, err := tm.service.CreateListing(ctx, seller, descriptor)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), tokenID)
}

func TestListingService_CreateListing_InvalidIdentity(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	// No ledger expectation: validation fails before any external call.
	tokenID, err := tm.service.CreateListing(context.Background(), "not-an-address", validDescriptor())
	assert.Zero(t, tokenID)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "identity", validationErr.Field)
}

func TestListingService_CreateListing_InvalidDescriptor(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.ListingDescriptor)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(d *domain.ListingDescriptor) { d.Title = "" },
			wantField: "title",
		},
		{
			name:      "price below minimum",
			mutate:    func(d *domain.ListingDescriptor) { d.Price = decimal.RequireFromString("0.05") },
			wantField: "price",
		},
		{
			name:      "price above maximum",
			mutate:    func(d *domain.ListingDescriptor) { d.Price = decimal.RequireFromString("500") },
			wantField: "price",
		},
		{
			name:      "unknown category",
			mutate:    func(d *domain.ListingDescriptor) { d.Category = "Spaceship" },
			wantField: "category",
		},
		{
			name:      "unknown condition",
			mutate:    func(d *domain.ListingDescriptor) { d.Condition = "Mint" },
			wantField: "car_condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestListing(t)
			defer tearDownTestListing(tm)

			descriptor := validDescriptor()
			tt.mutate(&descriptor)

			tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, descriptor)
			assert.Zero(t, tokenID)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestListingService_CreateListing_MintFails(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	ledgerErr := &domain.LedgerError{Op: "createToken", Err: errors.New("insufficient funds")}
	tm.ledger.EXPECT().
		Mint(gomock.Any(), gomock.Any()).
		Return(uint64(0), nil, ledgerErr)

	// No store expectations: the mint failed, nothing else runs.
	tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, validDescriptor())
	assert.Zero(t, tokenID)

	var le *domain.LedgerError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "createToken", le.Op)
}

func TestListingService_CreateListing_InsertRetriesThenSucceeds(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	receipt := &domain.Receipt{TxHash: "0xabc"}
	tm.ledger.EXPECT().
		Mint(gomock.Any(), gomock.Any()).
		Return(uint64(3), receipt, nil)

	// First insert attempt fails, the retry succeeds.
	gomock.InOrder(
		tm.store.EXPECT().
			InsertListing(gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset")),
		tm.store.EXPECT().
			InsertListing(gomock.Any(), gomock.Any()).
			Return(nil),
	)

	tm.store.EXPECT().
		InsertUserLink(gomock.Any(), uint64(3), testSellerAddress).
		Return(nil)

	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(nil)

	tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, validDescriptor())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), tokenID)
}

func TestListingService_CreateListing_InsertExhaustsRetries(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	receipt := &domain.Receipt{TxHash: "0xabc"}
	tm.ledger.EXPECT().
		Mint(gomock.Any(), gomock.Any()).
		Return(uint64(9), receipt, nil)

	tm.store.EXPECT().
		InsertListing(gomock.Any(), gomock.Any()).
		Return(errors.New("database unavailable")).
		MinTimes(1)

	tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, validDescriptor())

	// The minted token id survives the failure so the store half can be retried.
	assert.Equal(t, uint64(9), tokenID)

	var inconsistency *domain.InconsistencyError
	require.ErrorAs(t, err, &inconsistency)
	assert.Equal(t, uint64(9), inconsistency.TokenID)
	assert.Equal(t, "insertListing", inconsistency.Op)
	assert.Equal(t, domain.Identity(testSellerAddress), inconsistency.NewOwner)
	assert.True(t, inconsistency.Listed)
}

func TestListingService_CreateListing_UserLinkFailureIsNotFatal(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	receipt := &domain.Receipt{TxHash: "0xabc"}
	tm.ledger.EXPECT().
		Mint(gomock.Any(), gomock.Any()).
		Return(uint64(4), receipt, nil)

	tm.store.EXPECT().
		InsertListing(gomock.Any(), gomock.Any()).
		Return(nil)

	tm.store.EXPECT().
		InsertUserLink(gomock.Any(), uint64(4), testSellerAddress).
		Return(errors.New("duplicate key"))

	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(nil)

	tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, validDescriptor())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), tokenID)
}

func TestListingService_CreateListing_PublishFailureIsNotFatal(t *testing.T) {
	tm := setupTestListing(t)
	defer tearDownTestListing(tm)

	receipt := &domain.Receipt{TxHash: "0xabc"}
	tm.ledger.EXPECT().
		Mint(gomock.Any(), gomock.Any()).
		Return(uint64(5), receipt, nil)

	tm.store.EXPECT().
		InsertListing(gomock.Any(), gomock.Any()).
		Return(nil)

	tm.store.EXPECT().
		InsertUserLink(gomock.Any(), uint64(5), testSellerAddress).
		Return(nil)

	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(errors.New("broker unavailable"))

	tokenID, err := tm.service.CreateListing(context.Background(), testSellerAddress, validDescriptor())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), tokenID)
}
