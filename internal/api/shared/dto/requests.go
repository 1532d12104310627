package dto

import (
	"github.com/shopspring/decimal"

	apierrors "github.com/openmotors/car-ledger-api/internal/api/shared/errors"
	"github.com/openmotors/car-ledger-api/internal/domain"
)

// CreateCarRequest carries the multipart form fields of a create-listing
// request. The image file itself is handled separately by the handler.
type CreateCarRequest struct {
	WalletAddress string `form:"wallet_address"`
	Title         string `form:"title"`
	Price         string `form:"price"`
	Category      string `form:"category"`
	Condition     string `form:"car_condition"`
	CreatedDate   string `form:"created_date"`
	Description   string `form:"description"`
}

// Validate checks the request and converts it into a descriptor, leaving
// ImagePath for the handler to fill after the upload is stored
func (r *CreateCarRequest) Validate() (domain.Identity, *domain.ListingDescriptor, error) {
	identity := domain.Identity(r.WalletAddress)
	if !identity.Valid() {
		return "", nil, apierrors.NewValidationError("wallet_address must be a valid ledger address")
	}

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return "", nil, apierrors.NewValidationError("price must be a decimal number")
	}

	descriptor := &domain.ListingDescriptor{
		Title:       r.Title,
		Price:       price,
		Category:    r.Category,
		Condition:   domain.Condition(r.Condition),
		CreatedDate: r.CreatedDate,
		Description: r.Description,
	}
	return identity, descriptor, nil
}

// BuyCarRequest represents the request body for purchasing a listed car
type BuyCarRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// Validate validates the request body
func (r *BuyCarRequest) Validate() (domain.Identity, error) {
	identity := domain.Identity(r.WalletAddress)
	if !identity.Valid() {
		return "", apierrors.NewValidationError("wallet_address must be a valid ledger address")
	}
	return identity, nil
}

// CancelListingRequest represents the request body for canceling a listing
type CancelListingRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// Validate validates the request body
func (r *CancelListingRequest) Validate() (domain.Identity, error) {
	identity := domain.Identity(r.WalletAddress)
	if !identity.Valid() {
		return "", apierrors.NewValidationError("wallet_address must be a valid ledger address")
	}
	return identity, nil
}

// ReconcileRequest represents the request body for reconciling a token's
// store row with the ledger. The descriptor fields are only needed when the
// store row is missing entirely; price and ownership always come from the
// ledger.
type ReconcileRequest struct {
	Title       string `json:"title,omitempty"`
	Category    string `json:"category,omitempty"`
	Condition   string `json:"car_condition,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

// Descriptor returns the supplied descriptor, or nil when no descriptor
// fields were sent
func (r *ReconcileRequest) Descriptor() *domain.ListingDescriptor {
	if r.Title == "" && r.Category == "" && r.Condition == "" &&
		r.CreatedDate == "" && r.Description == "" && r.ImagePath == "" {
		return nil
	}
	return &domain.ListingDescriptor{
		Title:       r.Title,
		Category:    r.Category,
		Condition:   domain.Condition(r.Condition),
		CreatedDate: r.CreatedDate,
		Description: r.Description,
		ImagePath:   r.ImagePath,
	}
}
