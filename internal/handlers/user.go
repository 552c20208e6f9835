// internal/handlers/user.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/repository"
	"github.com/xingluo6/redmart/internal/utils"
)

type UserHandler struct {
	users *repository.UserRepository
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type CreateUserRequest struct {
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Email            string `json:"email" validate:"required,email"`
	RegistrationDate string `json:"registration_date"`
	LastLogin        string `json:"last_login"`
}

// GET /v1/users
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// POST /v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	now := time.Now().Format(time.RFC3339)
	if req.RegistrationDate == "" {
		req.RegistrationDate = now
	}
	if req.LastLogin == "" {
		req.LastLogin = now
	}

	id, err := h.users.Create(c.Request.Context(), &models.User{
		Username:         req.Username,
		Email:            req.Email,
		RegistrationDate: req.RegistrationDate,
		LastLogin:        req.LastLogin,
	})
	if err != nil {
		handleRepoError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"user_id": id})
}

// GET /v1/users/:id — detail view includes the order-id history.
func (h *UserHandler) Get(c *gin.Context) {
	detail, err := h.users.GetWithOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, detail)
}

// PUT /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.users.Update(c.Request.Context(), c.Param("id"), fieldMapFromJSON(raw)); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updated": true})
}

// DELETE /v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
