package ledger

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/openmotors/car-ledger-api/internal/domain"
)

//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks

// Ledger is the write and read surface of the on-chain marketplace
// contract. All prices cross this boundary in ETH as decimals; the
// implementation converts to wei internally.
type Ledger interface {
	// ListingFee returns the flat fee the contract charges to mint
	// and list a token
	ListingFee(ctx context.Context) (decimal.Decimal, error)

	// Mint creates a new token listed at the given price and returns
	// its ledger-assigned token id together with the mined receipt
	Mint(ctx context.Context, price decimal.Decimal) (uint64, *domain.Receipt, error)

	// ListForSale relists a previously sold token at a new price
	ListForSale(ctx context.Context, tokenID uint64, price decimal.Decimal) (*domain.Receipt, error)

	// ExecuteSale transfers a listed token to the buyer, paying the
	// listed price to the seller
	ExecuteSale(ctx context.Context, tokenID uint64, buyer domain.Identity, price decimal.Decimal) (*domain.Receipt, error)

	// CancelListing delists a token without transferring ownership
	CancelListing(ctx context.Context, tokenID uint64) (*domain.Receipt, error)

	// ListingStatus returns the authoritative listing state for a token
	ListingStatus(ctx context.Context, tokenID uint64) (*domain.ListingState, error)

	// HeldTokens returns every token the identity currently holds or
	// has listed, in ledger order
	HeldTokens(ctx context.Context, identity domain.Identity) ([]domain.HeldToken, error)

	// Close closes the underlying connection
	Close()
}

var weiPerEth = decimal.New(1, 18)

// EthToWei converts an ETH amount to its integer wei representation
func EthToWei(amount decimal.Decimal) *big.Int {
	return amount.Mul(weiPerEth).BigInt()
}

// WeiToEth converts an integer wei amount to ETH
func WeiToEth(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -18)
}
