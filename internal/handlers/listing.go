// internal/handlers/listing.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, listing.ToRecord())
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, listing.ToRecord())
}

// GET /variants/:id/listings
func (h *ListingHandler) GetVariantListings(c *gin.Context) {
	aggregate, err := h.listingService.GetListingsForVariant(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	listings := aggregate.Listings()
	records := make([]domain.Record, 0, len(listings))
	for _, listing := range listings {
		records = append(records, listing.ToRecord())
	}

	utils.SuccessResponse(c, gin.H{
		"variant_id":     aggregate.VariantID().Value(),
		"listings":       records,
		"total_quantity": aggregate.TotalQuantity(),
	})
}

// POST /listings/import
func (h *ListingHandler) ImportListings(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	imported, err := h.listingService.ImportListings(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"imported": imported})
}

// POST /listings/:id/activate
func (h *ListingHandler) ActivateListing(c *gin.Context) {
	listing, err := h.listingService.ActivateListing(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, listing.ToRecord())
}

// POST /listings/:id/sold
func (h *ListingHandler) MarkListingSold(c *gin.Context) {
	listing, err := h.listingService.MarkListingSold(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, listing.ToRecord())
}

// POST /listings/:id/cancel
func (h *ListingHandler) CancelListing(c *gin.Context) {
	listing, err := h.listingService.CancelListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, listing.ToRecord())
}

// PATCH /listings/:id/price
func (h *ListingHandler) UpdateListingPrice(c *gin.Context) {
	var req struct {
		Price    string `json:"price" binding:"required"`
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	listing, err := h.listingService.UpdateListingPrice(c.Request.Context(), c.Param("id"), req.Price, req.Currency)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, listing.ToRecord())
}

// PATCH /listings/:id/quantity
func (h *ListingHandler) UpdateListingQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	listing, err := h.listingService.UpdateListingQuantity(c.Param("id"), req.Quantity)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, listing.ToRecord())
}

// POST /listings/expire-due
func (h *ListingHandler) ExpireDueListings(c *gin.Context) {
	expired, err := h.listingService.ExpireDueListings()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"expired": expired})
}

// POST /listings/batch/reprice
func (h *ListingHandler) BatchReprice(c *gin.Context) {
	var req services.BatchRepriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	op, err := h.listingService.BatchReprice(c.Request.Context(), &req)
	if err != nil && op == nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, op)
}

// POST /variants/:id/listings/cancel-all
func (h *ListingHandler) CancelAllActive(c *gin.Context) {
	op, err := h.listingService.CancelAllActive(c.Request.Context(), c.Param("id"))
	if err != nil && op == nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, op)
}

// GET /batch-operations/:id
func (h *ListingHandler) GetBatchOperation(c *gin.Context) {
	op, err := h.listingService.GetBatchOperation(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.SuccessResponse(c, op)
}
