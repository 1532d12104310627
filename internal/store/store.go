package store

import (
	"context"

	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

// Store defines the interface for record-store operations. The store holds
// descriptive metadata and the transaction log; the ledger remains the
// source of truth for ownership.
type Store interface {
	// InsertListing persists a car listing row. Inserting an already-present
	// token_id is a no-op, so the call is safe to retry after a partial failure.
	InsertListing(ctx context.Context, listing *schema.CarListing) error
	// InsertUserLink appends a token-to-seller link row
	InsertUserLink(ctx context.Context, tokenID uint64, userAddress string) error
	// GetListing retrieves a listing by its ledger token id (nil when absent)
	GetListing(ctx context.Context, tokenID uint64) (*schema.CarListing, error)
	// ListListings retrieves every listing, newest first
	ListListings(ctx context.Context) ([]*schema.CarListing, error)
	// UpdateOwnership sets owner, seller and the listed flag for one token.
	// Repeating the call with identical arguments converges to the same row.
	UpdateOwnership(ctx context.Context, tokenID uint64, newOwner, newSeller string, listed bool) error
	// UpdateListed sets only the currently_listed flag, leaving ownership untouched
	UpdateListed(ctx context.Context, tokenID uint64, listed bool) error
	// InsertTransaction appends a completed-transfer record
	InsertTransaction(ctx context.Context, tx *schema.Transaction) error
	// QueryByOwnerOrSeller retrieves listings where the identity is owner or seller
	QueryByOwnerOrSeller(ctx context.Context, identity string) ([]*schema.CarListing, error)
	// QueryTransactions retrieves transactions where the identity is buyer or seller
	QueryTransactions(ctx context.Context, identity string) ([]*schema.Transaction, error)
}
