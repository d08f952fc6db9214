// internal/handlers/pricing.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/utils"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// GET /variants/:id/optimal-price
func (h *PricingHandler) GetOptimalPrice(c *gin.Context) {
	variantID := c.Param("id")

	margin, _ := strconv.ParseFloat(c.Query("margin_percent"), 64)
	lookback, _ := strconv.Atoi(c.Query("lookback_days"))

	recommendation, err := h.pricingService.CalculateOptimalPrice(variantID, margin, lookback)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, recommendation)
}

// POST /sales
func (h *PricingHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	sale, err := h.pricingService.RecordSale(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, sale)
}

// GET /variants/:id/price-statistics
func (h *PricingHandler) GetPriceStatistics(c *gin.Context) {
	variantID := c.Param("id")

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}

	end := time.Now().UTC()
	window, err := domain.NewTimeRange(end.AddDate(0, 0, -days), end)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	stats, err := h.pricingService.GetPriceStatistics(variantID, window)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
