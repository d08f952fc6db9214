// internal/handlers/market_data.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/utils"
)

type MarketDataHandler struct {
	marketDataService *services.MarketDataService
}

func NewMarketDataHandler(marketDataService *services.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
	}
}

// GET /variants/:id/market-data
func (h *MarketDataHandler) GetMarketData(c *gin.Context) {
	md, err := h.marketDataService.GetLatestMarketData(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, marketDataView(md))
}

// POST /products/:id/variants/:variantId/market-data/refresh
func (h *MarketDataHandler) RefreshMarketData(c *gin.Context) {
	md, err := h.marketDataService.RefreshVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, marketDataView(md))
}

// GET /variants/:id/market-data/history
func (h *MarketDataHandler) GetMarketDataHistory(c *gin.Context) {
	variantID := c.Param("id")

	end := time.Now().UTC()
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid end timestamp", nil)
			return
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -30)
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid start timestamp", nil)
			return
		}
		start = parsed
	}

	window, err := domain.NewTimeRange(start, end)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	snapshots, err := h.marketDataService.GetSnapshotHistory(variantID, window, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, snapshots)
}

func marketDataView(md domain.MarketData) gin.H {
	view := gin.H{
		"sample_count": md.SampleCount(),
		"snapshot_at":  md.SnapshotAt(),
	}
	if ask, ok := md.LowestAsk(); ok {
		view["lowest_ask"] = ask.Amount().String()
		view["currency_code"] = ask.CurrencyCode()
	}
	if bid, ok := md.HighestBid(); ok {
		view["highest_bid"] = bid.Amount().String()
		view["currency_code"] = bid.CurrencyCode()
	}
	if sale, ok := md.LastSale(); ok {
		view["last_sale"] = sale.Amount().String()
	}
	if spread, ok := md.Spread(); ok {
		view["spread"] = spread.Amount().String()
	}
	if mid, ok := md.Midpoint(); ok {
		view["midpoint"] = mid.String()
	}
	return view
}
