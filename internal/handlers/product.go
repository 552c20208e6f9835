// internal/handlers/product.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/repository"
	"github.com/xingluo6/redmart/internal/utils"
)

type ProductHandler struct {
	products *repository.ProductRepository
}

func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"min=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	CreatedAt   string  `json:"created_at"`
}

type StockAdjustmentRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.products.List(c.Request.Context(), params)
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339)
	}

	id, err := h.products.Create(c.Request.Context(), &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   createdAt,
	})
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"product_id": id})
}

// GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// PUT /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.products.Update(c.Request.Context(), c.Param("id"), fieldMapFromJSON(raw)); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

// PATCH /v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.products.IncrementStock(c.Request.Context(), c.Param("id"), req.Delta); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

// DELETE /v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /v1/products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, categories)
}
