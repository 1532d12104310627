package marketplace

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/ledger"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/store"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

// Asset joins the ledger's view of one held token with the store's
// descriptive row for it
type Asset struct {
	Token   domain.HeldToken
	Listing *schema.CarListing
}

// Portfolio is the aggregation result for one identity: per-asset detail in
// ledger enumeration order plus the summed ledger price.
type Portfolio struct {
	Assets     []Asset
	TotalValue decimal.Decimal
}

// AggregationService answers "what does this identity hold and what is it
// worth" by joining the ledger enumeration with store metadata. It owns no
// data of its own.
type AggregationService struct {
	ledger ledger.Ledger
	store  store.Store
	pool   pond.ResultPool[*schema.CarListing]
}

// NewAggregationService creates a new aggregation service with a bounded
// worker pool for the per-token store lookups
func NewAggregationService(l ledger.Ledger, s store.Store, concurrency int) *AggregationService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &AggregationService{
		ledger: l,
		store:  s,
		pool:   pond.NewResultPool[*schema.CarListing](concurrency),
	}
}

// ListAssets enumerates the tokens the ledger holds for the identity and
// joins each with its store row. A ledger-held token with no store row is a
// partial-failure artifact of listing creation: it is logged and skipped, not
// fatal to the batch. Output order follows the ledger enumeration.
func (s *AggregationService) ListAssets(ctx context.Context, identity domain.Identity) (*Portfolio, error) {
	if !identity.Valid() {
		return nil, &domain.ValidationError{Field: "identity", Reason: "not a valid ledger address"}
	}

	held, err := s.ledger.HeldTokens(ctx, identity)
	if err != nil {
		return nil, err
	}

	// Fan the store lookups out, then collect in enumeration order.
	tasks := make([]pond.Result[*schema.CarListing], len(held))
	for i, token := range held {
		tokenID := token.TokenID
		tasks[i] = s.pool.SubmitErr(func() (*schema.CarListing, error) {
			return s.store.GetListing(ctx, tokenID)
		})
	}

	portfolio := &Portfolio{
		Assets:     make([]Asset, 0, len(held)),
		TotalValue: decimal.Zero,
	}

	for i, token := range held {
		row, err := tasks[i].Wait()
		if err != nil {
			return nil, &domain.StoreError{Op: "getListing", TokenID: token.TokenID, Err: err}
		}
		if row == nil {
			logger.WarnCtx(ctx, "Ledger-held token has no store row, skipping",
				zap.Uint64("tokenID", token.TokenID),
				zap.String("identity", identity.String()),
			)
			continue
		}

		portfolio.Assets = append(portfolio.Assets, Asset{Token: token, Listing: row})
		portfolio.TotalValue = portfolio.TotalValue.Add(token.Price)
	}

	return portfolio, nil
}

// Close stops the lookup worker pool
func (s *AggregationService) Close() {
	_ = s.pool.Stop()
}
