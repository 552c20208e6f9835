// internal/handlers/analytics.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/analytics"
	"github.com/xingluo6/redmart/internal/utils"
)

type AnalyticsHandler struct {
	engine *analytics.Engine
}

func NewAnalyticsHandler(engine *analytics.Engine) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine}
}

// GET /v1/analytics — a failed run returns an error, never partial data.
func (h *AnalyticsHandler) Run(c *gin.Context) {
	report, err := h.engine.Run(c.Request.Context())
	if err != nil {
		handleRepoError(c, err)
		return
	}
	utils.SuccessResponse(c, report)
}
