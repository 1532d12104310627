package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openmotors/car-ledger-api/internal/api/shared/dto"
	"github.com/openmotors/car-ledger-api/internal/assets"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/marketplace"
	"github.com/openmotors/car-ledger-api/internal/store"
)

// Handler handles REST API requests
type Handler struct {
	listing     *marketplace.ListingService
	purchase    *marketplace.PurchaseService
	aggregation *marketplace.AggregationService
	reconciler  *marketplace.Reconciler
	store       store.Store
	assets      assets.Storage
}

// NewHandler creates a new REST API handler
func NewHandler(
	listing *marketplace.ListingService,
	purchase *marketplace.PurchaseService,
	aggregation *marketplace.AggregationService,
	reconciler *marketplace.Reconciler,
	s store.Store,
	assetStorage assets.Storage,
) *Handler {
	return &Handler{
		listing:     listing,
		purchase:    purchase,
		aggregation: aggregation,
		reconciler:  reconciler,
		store:       s,
		assets:      assetStorage,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListCars returns every car listing, newest first. An empty result is
// reported as 404 with the legacy status envelope.
func (h *Handler) ListCars(c *gin.Context) {
	rows, err := h.store.ListListings(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list cars")
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, dto.NewEnvelope(http.StatusNotFound, nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, dto.NewCarResponses(rows)))
}

// GetCar returns one car listing by its ledger token id
func (h *Handler) GetCar(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	row, err := h.store.GetListing(c.Request.Context(), tokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to get car")
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, dto.NewEnvelope(http.StatusNotFound, nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, dto.NewCarResponse(row)))
}

// CreateCar creates a new listing from a multipart form: descriptor fields
// plus the image file. The upload is stored first so the minted listing
// never references a missing asset.
func (h *Handler) CreateCar(c *gin.Context) {
	var req dto.CreateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "Invalid form data", err.Error())
		return
	}

	identity, descriptor, err := req.Validate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondValidationError(c, "image file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondInternalError(c, err, "Failed to read upload")
		return
	}
	defer src.Close()

	imagePath, err := h.assets.SaveImage(c.Request.Context(), src)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	descriptor.ImagePath = imagePath

	tokenID, err := h.listing.CreateListing(c.Request.Context(), identity, *descriptor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEnvelope(http.StatusCreated, dto.CreateCarResponse{
		TokenID:   tokenID,
		ImagePath: imagePath,
	}))
}

// BuyCar purchases a listed car for the requesting wallet
func (h *Handler) BuyCar(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.BuyCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	buyer, err := req.Validate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	receipt, err := h.purchase.Buy(c.Request.Context(), tokenID, buyer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, dto.BuyCarResponse{
		TokenID: tokenID,
		Owner:   buyer.String(),
		Receipt: dto.NewReceiptResponse(receipt),
	}))
}

// CancelListing cancels an active listing for its seller
func (h *Handler) CancelListing(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.CancelListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	caller, err := req.Validate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	receipt, err := h.purchase.Cancel(c.Request.Context(), tokenID, caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, dto.CancelListingResponse{
		TokenID: tokenID,
		Receipt: dto.NewReceiptResponse(receipt),
	}))
}

// ReconcileCar converges a token's store row to the ledger state
func (h *Handler) ReconcileCar(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	row, err := h.reconciler.Reconcile(c.Request.Context(), tokenID, req.Descriptor())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(row))
}

// ProfileCars returns the listings where the address is owner or seller.
// Unlike the car list endpoint this returns a plain, possibly empty array.
func (h *Handler) ProfileCars(c *gin.Context) {
	identity := domain.Identity(c.Param("address"))
	if !identity.Valid() {
		respondValidationError(c, "address must be a valid ledger address")
		return
	}

	rows, err := h.store.QueryByOwnerOrSeller(c.Request.Context(), identity.String())
	if err != nil {
		respondInternalError(c, err, "Failed to query cars")
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponses(rows))
}

// ProfileAssets returns the ledger-store join for everything the address
// holds, plus the summed value
func (h *Handler) ProfileAssets(c *gin.Context) {
	identity := domain.Identity(c.Param("address"))
	if !identity.Valid() {
		respondValidationError(c, "address must be a valid ledger address")
		return
	}

	portfolio, err := h.aggregation.ListAssets(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPortfolioResponse(portfolio))
}

// ListTransactions returns the transfer history for a wallet address. An
// empty history is reported as 404 with the legacy status envelope.
func (h *Handler) ListTransactions(c *gin.Context) {
	identity := domain.Identity(c.Query("address"))
	if !identity.Valid() {
		respondValidationError(c, "address must be a valid ledger address")
		return
	}

	rows, err := h.store.QueryTransactions(c.Request.Context(), identity.String())
	if err != nil {
		respondInternalError(c, err, "Failed to query transactions")
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, dto.NewEnvelope(http.StatusNotFound, nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewEnvelope(http.StatusOK, dto.NewTransactionResponses(rows)))
}

// parseTokenID parses the token_id path parameter, responding with a 400 on
// malformed input
func parseTokenID(c *gin.Context) (uint64, bool) {
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil || tokenID == 0 {
		respondBadRequest(c, "token_id must be a positive integer")
		return 0, false
	}
	return tokenID, true
}
