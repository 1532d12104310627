package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/marketplace"
	"github.com/openmotors/car-ledger-api/internal/store/schema"
)

// Envelope is the legacy response shape of the car and transaction
// endpoints: an explicit status string alongside the HTTP status code.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// NewEnvelope builds an envelope whose status string mirrors the HTTP code,
// e.g. "200 OK" or "404 Not Found"
func NewEnvelope(code int, data interface{}) Envelope {
	return Envelope{
		Status: fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Data:   data,
	}
}

// CarResponse represents one car listing
type CarResponse struct {
	TokenID         uint64 `json:"token_id"`
	Owner           string `json:"owner"`
	Seller          string `json:"seller"`
	Title           string `json:"title"`
	Price           string `json:"price"`
	Category        string `json:"category"`
	Condition       string `json:"car_condition"`
	CreatedDate     string `json:"created_date"`
	Description     string `json:"description"`
	ImagePath       string `json:"image_path"`
	CurrentlyListed bool   `json:"currently_listed"`
}

// NewCarResponse maps a store row to its response shape
func NewCarResponse(row *schema.CarListing) CarResponse {
	return CarResponse{
		TokenID:         row.TokenID,
		Owner:           row.Owner,
		Seller:          row.Seller,
		Title:           row.Title,
		Price:           row.Price.String(),
		Category:        row.Category,
		Condition:       row.Condition,
		CreatedDate:     row.CreatedDate,
		Description:     row.Description,
		ImagePath:       row.ImagePath,
		CurrentlyListed: row.CurrentlyListed,
	}
}

// NewCarResponses maps a slice of store rows
func NewCarResponses(rows []*schema.CarListing) []CarResponse {
	out := make([]CarResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewCarResponse(row))
	}
	return out
}

// ReceiptResponse represents a confirmed ledger mutation
type ReceiptResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

// NewReceiptResponse maps a ledger receipt
func NewReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		TxHash:      r.TxHash,
		BlockNumber: r.BlockNumber,
		GasUsed:     r.GasUsed,
	}
}

// CreateCarResponse represents the response for a created listing
type CreateCarResponse struct {
	TokenID   uint64 `json:"token_id"`
	ImagePath string `json:"image_path"`
}

// BuyCarResponse represents the response for a completed purchase
type BuyCarResponse struct {
	TokenID uint64          `json:"token_id"`
	Owner   string          `json:"owner"`
	Receipt ReceiptResponse `json:"receipt"`
}

// CancelListingResponse represents the response for a canceled listing
type CancelListingResponse struct {
	TokenID uint64          `json:"token_id"`
	Receipt ReceiptResponse `json:"receipt"`
}

// TransactionResponse represents one completed transfer
type TransactionResponse struct {
	TokenID         uint64    `json:"token_id"`
	Buyer           string    `json:"buyer"`
	Seller          string    `json:"seller"`
	Price           string    `json:"price"`
	TransactionType string    `json:"transaction_type"`
	TransactionDate time.Time `json:"transaction_date"`
}

// NewTransactionResponses maps transaction rows to their response shape
func NewTransactionResponses(rows []*schema.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, TransactionResponse{
			TokenID:         row.TokenID,
			Buyer:           row.Buyer,
			Seller:          row.Seller,
			Price:           row.Price.String(),
			TransactionType: row.TransactionType,
			TransactionDate: row.TransactionDate,
		})
	}
	return out
}

// AssetResponse joins ledger and store data for one held token
type AssetResponse struct {
	TokenID     uint64      `json:"token_id"`
	LedgerOwner string      `json:"ledger_owner"`
	LedgerPrice string      `json:"ledger_price"`
	Listing     CarResponse `json:"listing"`
}

// PortfolioResponse represents the aggregation output for one identity
type PortfolioResponse struct {
	Assets     []AssetResponse `json:"assets"`
	TotalValue string          `json:"total_value"`
}

// NewPortfolioResponse maps an aggregation result
func NewPortfolioResponse(p *marketplace.Portfolio) PortfolioResponse {
	assets := make([]AssetResponse, 0, len(p.Assets))
	for _, a := range p.Assets {
		assets = append(assets, AssetResponse{
			TokenID:     a.Token.TokenID,
			LedgerOwner: a.Token.Owner.String(),
			LedgerPrice: a.Token.Price.String(),
			Listing:     NewCarResponse(a.Listing),
		})
	}
	return PortfolioResponse{
		Assets:     assets,
		TotalValue: p.TotalValue.String(),
	}
}
