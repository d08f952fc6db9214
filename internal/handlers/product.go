// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/repricer-backend/internal/services"
	"github.com/javajoker/repricer-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	aggregate, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, aggregate.ToRecord())
}

// POST /products/:id/sync
func (h *ProductHandler) SyncProduct(c *gin.Context) {
	aggregate, err := h.productService.SyncProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, aggregate.ToRecord())
}

// GET /catalog/search
func (h *ProductHandler) SearchCatalog(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.BadRequestResponse(c, "query parameter is required", nil)
		return
	}

	pageNumber, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.productService.SearchCatalog(c.Request.Context(), query, pageNumber, pageSize)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	records := make([]interface{}, 0, len(products))
	for _, product := range products {
		records = append(records, product.ToRecord())
	}
	utils.SuccessResponse(c, records)
}
