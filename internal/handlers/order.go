// internal/handlers/order.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/repository"
	"github.com/xingluo6/redmart/internal/utils"
)

type OrderHandler struct {
	orders *repository.OrderRepository
}

func NewOrderHandler(orders *repository.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type CreateOrderItemRequest struct {
	ProductRef  string  `json:"product_ref" validate:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" validate:"min=0"`
}

type CreateOrderRequest struct {
	UserID      string                   `json:"user_id" validate:"required"`
	OrderDate   string                   `json:"order_date"`
	TotalAmount float64                  `json:"total_amount" validate:"min=0"`
	Country     string                   `json:"country"`
	Status      string                   `json:"status"`
	Items       []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GET /v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orders.List(c.Request.Context(), params)
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// POST /v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	order := &models.Order{
		UserID:      req.UserID,
		OrderDate:   req.OrderDate,
		TotalAmount: req.TotalAmount,
		Country:     req.Country,
		Status:      models.OrderStatus(req.Status),
	}
	if order.OrderDate == "" {
		order.OrderDate = time.Now().Format(time.RFC3339)
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	for i, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			Index:       i,
			ProductRef:  item.ProductRef,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	id, err := h.orders.Create(c.Request.Context(), order)
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"order_id": id})
}

// GET /v1/orders/:id — detail view resolves line items with computed totals.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRepoError(c, err)
		return
	}

	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, gin.H{
			"product_ref": item.ProductRef,
			"description": item.Description,
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"total_price": item.TotalPrice(),
		})
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
		"items": items,
	})
}

// PUT /v1/orders/:id/status — any status value is accepted.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status)); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

// DELETE /v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
