// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/stockx"
	"github.com/javajoker/repricer-backend/internal/utils"
)

// respondDomainError maps the domain's error taxonomy onto HTTP statuses.
// Validation and mapping failures are the caller's fault; rule violations
// are conflicts; anything else is a server-side problem.
func respondDomainError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		utils.BadRequestResponse(c, ve.Message, gin.H{"kind": ve.Kind, "field": ve.Field})
		return
	}

	var me *domain.MappingError
	if errors.As(err, &me) {
		utils.UnprocessableResponse(c, me.Message, gin.H{"field": me.Field})
		return
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		utils.ConflictResponse(c, de.Message)
		return
	}

	var apiErr *stockx.APIError
	if errors.As(err, &apiErr) {
		utils.BadGatewayResponse(c, apiErr.Error())
		return
	}

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrVariantNotFound):
		utils.NotFoundResponse(c, "variant")
	case errors.Is(err, services.ErrListingNotFound):
		utils.NotFoundResponse(c, "listing")
	case errors.Is(err, services.ErrInsufficientPricingData):
		utils.UnprocessableResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
