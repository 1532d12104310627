package marketplace

import (
	"context"

	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/config"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/ledger"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/store"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

// Reconciler repairs a store row that diverged from the ledger, the retry
// half of an InconsistencyError. The ledger state is re-read and written
// into the store; the store is never allowed to win.
type Reconciler struct {
	ledger ledger.Ledger
	store  store.Store
	retry  config.RetryConfig
}

// NewReconciler creates a new reconciler
func NewReconciler(l ledger.Ledger, s store.Store, retry config.RetryConfig) *Reconciler {
	return &Reconciler{ledger: l, store: s, retry: retry}
}

// Reconcile re-reads the ledger state for a token and idempotently converges
// the store row to it. When no row exists yet (a minted-but-undescribed
// token) the caller must supply the descriptor so the row can be created;
// without one only an existing row can be repaired.
func (r *Reconciler) Reconcile(ctx context.Context, tokenID uint64, descriptor *domain.ListingDescriptor) (*schema.CarListing, error) {
	state, err := r.ledger.ListingStatus(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	row, err := r.store.GetListing(ctx, tokenID)
	if err != nil {
		return nil, &domain.StoreError{Op: "getListing", TokenID: tokenID, Err: err}
	}

	if row == nil {
		if descriptor == nil {
			return nil, domain.ErrListingNotFound
		}
		// Price and ownership always come from the ledger; the descriptor
		// only supplies the fields the ledger does not know.
		descriptor.Price = state.Price
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}

		row = &schema.CarListing{
			TokenID:         tokenID,
			Owner:           state.Owner.String(),
			Seller:          state.Seller.String(),
			Title:           descriptor.Title,
			Price:           state.Price,
			Category:        descriptor.Category,
			Condition:       string(descriptor.Condition),
			CreatedDate:     descriptor.CreatedDate,
			Description:     descriptor.Description,
			ImagePath:       descriptor.ImagePath,
			CurrentlyListed: state.CurrentlyListed,
		}
		err = retryStore(ctx, r.retry, "insertListing", tokenID, func() error {
			return r.store.InsertListing(ctx, row)
		})
		if err != nil {
			return nil, &domain.InconsistencyError{
				TokenID:  tokenID,
				Op:       "insertListing",
				NewOwner: state.Owner,
				Listed:   state.CurrentlyListed,
				Err:      err,
			}
		}

		logger.InfoCtx(ctx, "Recreated missing store row from ledger state",
			zap.Uint64("tokenID", tokenID),
			zap.String("owner", state.Owner.String()),
		)
		return row, nil
	}

	err = retryStore(ctx, r.retry, "updateOwnership", tokenID, func() error {
		return r.store.UpdateOwnership(ctx, tokenID, state.Owner.String(), state.Seller.String(), state.CurrentlyListed)
	})
	if err != nil {
		return nil, &domain.InconsistencyError{
			TokenID:  tokenID,
			Op:       "updateOwnership",
			NewOwner: state.Owner,
			Listed:   state.CurrentlyListed,
			Err:      err,
		}
	}

	logger.InfoCtx(ctx, "Store row converged to ledger state",
		zap.Uint64("tokenID", tokenID),
		zap.String("owner", state.Owner.String()),
		zap.Bool("currentlyListed", state.CurrentlyListed),
	)

	row.Owner = state.Owner.String()
	row.Seller = state.Seller.String()
	row.CurrentlyListed = state.CurrentlyListed
	return row, nil
}
