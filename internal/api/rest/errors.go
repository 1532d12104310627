package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/openmotors/car-ledger-api/internal/api/shared/errors"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...))
}

// respondServiceError maps a marketplace service error onto the wire. The
// inconsistency case deliberately does not claim total failure: the ledger
// half already committed and the client must retry only the store half.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondValidationError(c, validationErr.Error())
		return
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusUnprocessableEntity, apiErr)
		return
	}

	var inconsistencyErr *domain.InconsistencyError
	if errors.As(err, &inconsistencyErr) {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.Uint64("tokenID", inconsistencyErr.TokenID),
			zap.String("op", inconsistencyErr.Op),
		)
		c.JSON(http.StatusInternalServerError,
			apierrors.NewInconsistencyError(inconsistencyErr.TokenID, inconsistencyErr.Error()))
		return
	}

	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		respondNotFound(c, "Listing not found")
	case errors.Is(err, domain.ErrNotListed):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Token is not listed for sale"))
	case errors.Is(err, domain.ErrNotSeller):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Only the listing seller may cancel"))
	default:
		var ledgerErr *domain.LedgerError
		if errors.As(err, &ledgerErr) {
			logger.ErrorCtx(c.Request.Context(), err,
				zap.String("op", ledgerErr.Op),
				zap.Uint64("tokenID", ledgerErr.TokenID),
			)
			c.JSON(http.StatusBadGateway, apierrors.NewLedgerError("Ledger call failed", ledgerErr.Error()))
			return
		}
		respondInternalError(c, err, "Request failed")
	}
}
