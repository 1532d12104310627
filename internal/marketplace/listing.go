package marketplace

import (
	"context"

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

// ListingService orchestrates car creation: ledger mint first, then the
// descriptive store rows. The ledger is never rolled back; once the mint
// confirms, every store failure is surfaced as an InconsistencyError carrying
// the minted token id so the store half can be retried.
type ListingService struct {
	ledger    ledger.Ledger
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	retry     config.RetryConfig
}

// NewListingService creates a new listing service
func NewListingService(
	l ledger.Ledger,
	s store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	retry config.RetryConfig,
) *ListingService {
	return &ListingService{
		ledger:    l,
		store:     s,
		publisher: publisher,
		clock:     clock,
		retry:     retry,
	}
}

// CreateListing mints a new token listed at the descriptor's price and
// persists the descriptive record. It returns the ledger-assigned token id.
// When the returned error is an InconsistencyError the token id is still
// valid: the mint confirmed and only the store half needs to be retried.
func (s *ListingService) CreateListing(ctx context.Context, identity domain.Identity, descriptor domain.ListingDescriptor) (uint64, error) {
	if !identity.Valid() {
		return 0, &domain.ValidationError{Field: "identity", Reason: "not a valid ledger address"}
	}
	if err := descriptor.Validate(); err != nil {
		return 0, err
	}

	tokenID, receipt, err := s.ledger.Mint(ctx, descriptor.Price)
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Token minted",
		zap.Uint64("tokenID", tokenID),
		zap.String("seller", identity.String()),
		zap.String("txHash", receipt.TxHash),
	)

	row := &schema.CarListing{
		TokenID:         tokenID,
		Owner:           identity.String(),
		Seller:          identity.String(),
		Title:           descriptor.Title,
		Price:           descriptor.Price,
		Category:        descriptor.Category,
		Condition:       string(descriptor.Condition),
		CreatedDate:     descriptor.CreatedDate,
		Description:     descriptor.Description,
		ImagePath:       descriptor.ImagePath,
		CurrentlyListed: true,
	}

	err = retryStore(ctx, s.retry, "insertListing", tokenID, func() error {
		return s.store.InsertListing(ctx, row)
	})
	if err != nil {
		return tokenID, &domain.InconsistencyError{
			TokenID:  tokenID,
			Op:       "insertListing",
			NewOwner: identity,
			Listed:   true,
			Err:      err,
		}
	}

	// The listing stands on its own; a failed link is reported, not fatal.
	if err := s.store.InsertUserLink(ctx, tokenID, identity.String()); err != nil {
		logger.WarnCtx(ctx, "Failed to insert user link",
			zap.Error(err),
			zap.Uint64("tokenID", tokenID),
			zap.String("user", identity.String()),
		)
	}

	publishEvent(ctx, s.publisher, s.clock, &domain.MarketEvent{
		EventType: domain.EventTypeListingCreated,
		TokenID:   tokenID,
		Seller:    identity.String(),
		Price:     descriptor.Price.String(),
		TxHash:    receipt.TxHash,
	})

	return tokenID, nil
}
