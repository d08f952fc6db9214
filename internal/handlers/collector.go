// internal/handlers/collector.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/utils"
)

type CollectorHandler struct {
	collectorService *services.DataCollectorService
}

func NewCollectorHandler(collectorService *services.DataCollectorService) *CollectorHandler {
	return &CollectorHandler{
		collectorService: collectorService,
	}
}

// POST /collect
func (h *CollectorHandler) Collect(c *gin.Context) {
	var req struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	var report *services.CollectionReport
	var err error
	if len(req.ProductIDs) > 0 {
		report, err = h.collectorService.CollectProducts(c.Request.Context(), req.ProductIDs)
	} else {
		report, err = h.collectorService.CollectTrackedProducts(c.Request.Context())
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

// POST /products/:id/refresh
func (h *CollectorHandler) RefreshProduct(c *gin.Context) {
	aggregate, refreshed, err := h.collectorService.RefreshProductMarketData(c.Request.Context(), c.Param("id"))
	if err != nil && aggregate == nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": aggregate.ProductID().Value(),
		"refreshed":  refreshed,
	})
}
