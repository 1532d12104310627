package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the marketplace tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.CarListing{},
		&schema.UserLink{},
		&schema.Transaction{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// InsertListing persists a car listing row. ON CONFLICT (token_id) DO NOTHING
// makes the insert idempotent under the post-mint retry path.
func (s *pgStore) InsertListing(ctx context.Context, listing *schema.CarListing) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoNothing: true,
		}).
		Create(listing).Error
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// InsertUserLink appends a token-to-seller link row
func (s *pgStore) InsertUserLink(ctx context.Context, tokenID uint64, userAddress string) error {
	link := schema.UserLink{
		TokenID:     tokenID,
		UserAddress: userAddress,
	}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return fmt.Errorf("failed to insert user link: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by its ledger token id
func (s *pgStore) GetListing(ctx context.Context, tokenID uint64) (*schema.CarListing, error) {
	var listing schema.CarListing
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// ListListings retrieves every listing, newest first
func (s *pgStore) ListListings(ctx context.Context) ([]*schema.CarListing, error) {
	var listings []*schema.CarListing
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// UpdateOwnership sets owner, seller and the listed flag for one token.
// A single UPDATE statement, so concurrent readers never observe a
// half-updated row.
func (s *pgStore) UpdateOwnership(ctx context.Context, tokenID uint64, newOwner, newSeller string, listed bool) error {
	result := s.db.WithContext(ctx).
		Model(&schema.CarListing{}).
		Where("token_id = ?", tokenID).
		Updates(map[string]interface{}{
			"owner":            newOwner,
			"seller":           newSeller,
			"currently_listed": listed,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ownership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update ownership for token %d: %w", tokenID, domain.ErrListingNotFound)
	}
	return nil
}

// UpdateListed sets only the currently_listed flag
func (s *pgStore) UpdateListed(ctx context.Context, tokenID uint64, listed bool) error {
	result := s.db.WithContext(ctx).
		Model(&schema.CarListing{}).
		Where("token_id = ?", tokenID).
		Update("currently_listed", listed)
	if result.Error != nil {
		return fmt.Errorf("failed to update listed flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update listed flag for token %d: %w", tokenID, domain.ErrListingNotFound)
	}
	return nil
}

// InsertTransaction appends a completed-transfer record
func (s *pgStore) InsertTransaction(ctx context.Context, tx *schema.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// QueryByOwnerOrSeller retrieves listings where the identity is owner or seller
func (s *pgStore) QueryByOwnerOrSeller(ctx context.Context, identity string) ([]*schema.CarListing, error) {
	var listings []*schema.CarListing
	err := s.db.WithContext(ctx).
		Where("owner = ? OR seller = ?", identity, identity).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query listings by identity: %w", err)
	}
	return listings, nil
}

// QueryTransactions retrieves transactions where the identity is buyer or seller
func (s *pgStore) QueryTransactions(ctx context.Context, identity string) ([]*schema.Transaction, error) {
	var txs []*schema.Transaction
	err := s.db.WithContext(ctx).
		Where("buyer = ? OR seller = ?", identity, identity).
		Order("transaction_date DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return txs, nil
}
