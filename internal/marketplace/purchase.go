package marketplace

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/config"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/ledger"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/messaging"
	"github.com/openmotors/car-ledger-api/internal/store"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

// PurchaseService orchestrates sales and cancellations. The ledger executes
// the state change first and arbitrates concurrent buys; the store mutation
// runs only after the ledger confirms, retried idempotently on token_id.
type PurchaseService struct {
	ledger    ledger.Ledger
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
	retry     config.RetryConfig
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	l ledger.Ledger,
	s store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	retry config.RetryConfig,
) *PurchaseService {
	return &PurchaseService{
		ledger:    l,
		store:     s,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
		retry:     retry,
	}
}

// Buy transfers a listed token to the buyer at the listed price, then
// mirrors the ownership change into the store and appends the Transaction
// row. On a losing race the ledger call fails and no store row is touched.
func (s *PurchaseService) Buy(ctx context.Context, tokenID uint64, buyer domain.Identity) (*domain.Receipt, error) {
	if !buyer.Valid() {
		return nil, &domain.ValidationError{Field: "buyer", Reason: "not a valid ledger address"}
	}

	state, err := s.ledger.ListingStatus(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if !state.CurrentlyListed {
		return nil, domain.ErrNotListed
	}

	// The previous owner must come from the store's pre-update state; after
	// the ownership update commits it is gone.
	row, err := s.store.GetListing(ctx, tokenID)
	if err != nil {
		return nil, &domain.StoreError{Op: "getListing", TokenID: tokenID, Err: err}
	}
	if row == nil {
		return nil, domain.ErrListingNotFound
	}
	previousOwner := row.Owner

	receipt, err := s.ledger.ExecuteSale(ctx, tokenID, buyer, state.Price)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Sale executed",
		zap.Uint64("tokenID", tokenID),
		zap.String("buyer", buyer.String()),
		zap.String("previousOwner", previousOwner),
		zap.String("txHash", receipt.TxHash),
	)

	err = retryStore(ctx, s.retry, "updateOwnership", tokenID, func() error {
		return s.store.UpdateOwnership(ctx, tokenID, buyer.String(), buyer.String(), false)
	})
	if err != nil {
		return receipt, &domain.InconsistencyError{
			TokenID:  tokenID,
			Op:       "updateOwnership",
			NewOwner: buyer,
			Listed:   false,
			Err:      err,
		}
	}

	raw, err := s.json.Marshal(receipt)
	if err != nil {
		raw = nil
		logger.WarnCtx(ctx, "Failed to marshal receipt", zap.Error(err), zap.Uint64("tokenID", tokenID))
	}

	tx := &schema.Transaction{
		TokenID:         tokenID,
		Buyer:           buyer.String(),
		Seller:          previousOwner,
		Price:           state.Price,
		TransactionType: domain.TransactionTypeTransfer,
		Raw:             raw,
		TransactionDate: s.clock.Now(),
	}
	err = retryStore(ctx, s.retry, "insertTransaction", tokenID, func() error {
		return s.store.InsertTransaction(ctx, tx)
	})
	if err != nil {
		// Ownership is already consistent; only the audit trail is short one
		// row, which the same retry contract covers.
		return receipt, &domain.InconsistencyError{
			TokenID:  tokenID,
			Op:       "insertTransaction",
			NewOwner: buyer,
			Listed:   false,
			Err:      err,
		}
	}

	publishEvent(ctx, s.publisher, s.clock, &domain.MarketEvent{
		EventType: domain.EventTypeSaleExecuted,
		TokenID:   tokenID,
		Seller:    previousOwner,
		Buyer:     buyer.String(),
		Price:     state.Price.String(),
		TxHash:    receipt.TxHash,
	})

	return receipt, nil
}

// Cancel delists an active listing. Only the listing seller may cancel;
// ownership never changes and no Transaction row is written.
func (s *PurchaseService) Cancel(ctx context.Context, tokenID uint64, caller domain.Identity) (*domain.Receipt, error) {
	if !caller.Valid() {
		return nil, &domain.ValidationError{Field: "caller", Reason: "not a valid ledger address"}
	}

	state, err := s.ledger.ListingStatus(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if !state.CurrentlyListed {
		return nil, domain.ErrNotListed
	}
	if !state.Seller.Equal(caller) {
		return nil, fmt.Errorf("cancel token %d: %w", tokenID, domain.ErrNotSeller)
	}

	receipt, err := s.ledger.CancelListing(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Listing canceled",
		zap.Uint64("tokenID", tokenID),
		zap.String("seller", caller.String()),
		zap.String("txHash", receipt.TxHash),
	)

	err = retryStore(ctx, s.retry, "updateListed", tokenID, func() error {
		return s.store.UpdateListed(ctx, tokenID, false)
	})
	if err != nil {
		return receipt, &domain.InconsistencyError{
			TokenID:  tokenID,
			Op:       "updateListed",
			NewOwner: state.Owner,
			Listed:   false,
			Err:      err,
		}
	}

	publishEvent(ctx, s.publisher, s.clock, &domain.MarketEvent{
		EventType: domain.EventTypeListingCanceled,
		TokenID:   tokenID,
		Seller:    caller.String(),
		TxHash:    receipt.TxHash,
	})

	return receipt, nil
}
