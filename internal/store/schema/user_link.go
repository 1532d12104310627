package schema

import "time"

// UserLink associates a token with the seller identity that minted it.
// Append-only: one row per mint event, never updated or deleted.
type UserLink struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the ledger-assigned token identifier
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_user_links_token_id"`
	// UserAddress is the seller identity at creation time
	UserAddress string    `gorm:"column:user_address;not null;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the UserLink model
func (UserLink) TableName() string {
	return "user_links"
}
