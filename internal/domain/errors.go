package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrListingNotFound is returned when no store row exists for a token
	ErrListingNotFound = errors.New("listing not found")

	// ErrNotListed is returned when the ledger reports a token as not for sale
	ErrNotListed = errors.New("token is not listed for sale")

	// ErrNotSeller is returned when a cancel is attempted by someone other
	// than the listing seller
	ErrNotSeller = errors.New("caller is not the listing seller")
)

// ValidationError reports a missing or out-of-range input. It is always
// raised before any external call, so no side effect has happened yet.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// LedgerError reports a failed ledger call. The workflow aborts with no
// store mutation attempted.
type LedgerError struct {
	Op      string // ledger operation, e.g. "createToken", "executeSale"
	TokenID uint64 // zero when the token does not exist yet
	Err     error
}

func (e *LedgerError) Error() string {
	if e.TokenID == 0 {
		return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ledger %s failed for token %d: %v", e.Op, e.TokenID, e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }

// StoreError reports a persistence failure with no preceding ledger write,
// so the system state is still consistent.
type StoreError struct {
	Op      string
	TokenID uint64
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for token %d: %v", e.Op, e.TokenID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// InconsistencyError reports that a ledger call succeeded but the paired
// store write failed: the ledger (authoritative) and the store (descriptive
// cache) now diverge. It carries enough context for the caller to retry the
// store-only half of the operation; the ledger is never rolled back.
type InconsistencyError struct {
	TokenID  uint64
	Op       string   // store operation that failed, e.g. "insertListing"
	NewOwner Identity // intended owner after the ledger write, if any
	Listed   bool     // intended currently_listed after the ledger write
	Err      error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("ledger write for token %d confirmed but store %s failed, retry the store write: %v",
		e.TokenID, e.Op, e.Err)
}

func (e *InconsistencyError) Unwrap() error { return e.Err }
