package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction represents the transactions table - the immutable audit trail
// of completed transfers. A row is inserted only after the ledger sale has
// been confirmed.
type Transaction struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the ledger-assigned token identifier
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_transactions_token_id"`
	// Buyer is the new owner address
	Buyer string `gorm:"column:buyer;not null;type:text;index:idx_transactions_buyer"`
	// Seller is the previous owner address, read from the store before the
	// ownership update committed
	Seller string `gorm:"column:seller;not null;type:text;index:idx_transactions_seller"`
	// Price is the amount paid, in ledger currency units
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(20,8)"`
	// TransactionType is the kind of transfer recorded (e.g. "Transfer")
	TransactionType string `gorm:"column:transaction_type;not null;type:text"`
	// Raw holds the ledger receipt as JSON for audit purposes
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// TransactionDate is the timestamp the sale was recorded
	TransactionDate time.Time `gorm:"column:transaction_date;not null;default:now()"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
