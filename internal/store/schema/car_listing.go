package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarListing represents the car_listings table - the descriptive record for
// one sellable vehicle. The ledger is authoritative for existence and for the
// current sale-listed flag; CurrentlyListed here is a display cache that can
// transiently diverge after a partial failure.
type CarListing struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the ledger-assigned token identifier, unique and immutable once minted
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex"`
	// Owner is the current holder address
	Owner string `gorm:"column:owner;not null;type:text;index:idx_car_listings_owner"`
	// Seller is the address that listed the car (equals Owner pre-sale)
	Seller string `gorm:"column:seller;not null;type:text;index:idx_car_listings_seller"`
	// Title is the listing title
	Title string `gorm:"column:title;not null;type:text"`
	// Price is the listing price in ledger currency units
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(20,8)"`
	// Category is one of the accepted car categories
	Category string `gorm:"column:category;not null;type:text"`
	// Condition is the advertised condition (New, Used)
	Condition string `gorm:"column:car_condition;not null;type:text"`
	// CreatedDate is the caller-supplied manufacture/registration date
	CreatedDate string `gorm:"column:created_date;not null;type:text"`
	// Description is the free-text listing description
	Description string `gorm:"column:description;not null;type:text"`
	// ImagePath references the stored image asset
	ImagePath string `gorm:"column:image_path;not null;type:text"`
	// CurrentlyListed caches the ledger's for-sale flag
	CurrentlyListed bool `gorm:"column:currently_listed;not null;default:false"`
	// CreatedAt is the timestamp when this record was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last ownership or listing-flag change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the CarListing model
func (CarListing) TableName() string {
	return "car_listings"
}
