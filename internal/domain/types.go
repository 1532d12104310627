package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Condition represents the advertised condition of a listed car
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// IsValidCondition checks if a condition is one of the accepted values
func IsValidCondition(c Condition) bool {
	return c == ConditionNew || c == ConditionUsed
}

// Categories are the accepted car categories for a listing
var Categories = []string{
	"SUV",
	"Crossover",
	"Sedan",
	"Pickup Truck",
	"Hatchback",
	"Convertible",
	"Luxury",
	"Coupe",
	"Hybrid/Electric",
	"Minivan",
	"Sports Car",
	"Station Wagon",
}

// IsValidCategory checks if a category is one of the accepted values
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

var (
	// MinListingPrice is the lowest accepted listing price, in ledger currency units
	MinListingPrice = decimal.RequireFromString("0.1")
	// MaxListingPrice is the highest accepted listing price, in ledger currency units
	MaxListingPrice = decimal.RequireFromString("100")
)

// TransactionTypeTransfer is the transaction type recorded for a completed sale
const TransactionTypeTransfer = "Transfer"

// Identity is a ledger account address (0x-prefixed hex)
type Identity string

// Valid reports whether the identity is a well-formed ledger address
func (i Identity) Valid() bool {
	return common.IsHexAddress(string(i))
}

func (i Identity) String() string {
	return string(i)
}

// Equal compares two identities the way the ledger does: case-insensitively
// on the hex digits
func (i Identity) Equal(other Identity) bool {
	return common.HexToAddress(string(i)) == common.HexToAddress(string(other))
}

// ListingDescriptor carries the caller-supplied descriptive fields for a new
// car listing. All fields are required; Price must lie within
// [MinListingPrice, MaxListingPrice].
type ListingDescriptor struct {
	Title       string
	Price       decimal.Decimal
	Category    string
	Condition   Condition
	CreatedDate string
	Description string
	ImagePath   string
}

// Validate checks the descriptor before any external call is attempted
func (d *ListingDescriptor) Validate() error {
	if d.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if d.Price.IsZero() {
		return &ValidationError{Field: "price", Reason: "required"}
	}
	if d.Price.LessThan(MinListingPrice) || d.Price.GreaterThan(MaxListingPrice) {
		return &ValidationError{
			Field:  "price",
			Reason: "must be between " + MinListingPrice.String() + " and " + MaxListingPrice.String(),
		}
	}
	if d.Category == "" {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	if !IsValidCategory(d.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if d.Condition == "" {
		return &ValidationError{Field: "car_condition", Reason: "required"}
	}
	if !IsValidCondition(d.Condition) {
		return &ValidationError{Field: "car_condition", Reason: "must be New or Used"}
	}
	if d.CreatedDate == "" {
		return &ValidationError{Field: "created_date", Reason: "required"}
	}
	if d.Description == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if d.ImagePath == "" {
		return &ValidationError{Field: "image_path", Reason: "required"}
	}
	return nil
}

// Receipt describes a confirmed ledger state mutation
type Receipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

// ListingState is the ledger's view of one token
type ListingState struct {
	TokenID         uint64
	Seller          Identity
	Owner           Identity
	Price           decimal.Decimal
	CurrentlyListed bool
}

// HeldToken is one entry of a per-identity ledger enumeration
type HeldToken struct {
	TokenID uint64
	Seller  Identity
	Owner   Identity
	Price   decimal.Decimal
}

// MarketEventType represents the type of marketplace event
type MarketEventType string

const (
	EventTypeListingCreated  MarketEventType = "listing_created"
	EventTypeSaleExecuted    MarketEventType = "sale_executed"
	EventTypeListingCanceled MarketEventType = "listing_canceled"
)

// MarketEvent is a normalized marketplace event published after the ledger
// write and the paired store write have both completed
type MarketEvent struct {
	EventID   string          `json:"event_id"` // ULID, time-sortable
	EventType MarketEventType `json:"event_type"`
	TokenID   uint64          `json:"token_id"`
	Seller    string          `json:"seller,omitempty"`
	Buyer     string          `json:"buyer,omitempty"`
	Price     string          `json:"price,omitempty"`
	TxHash    string          `json:"tx_hash"`
	Timestamp time.Time       `json:"timestamp"`
}
