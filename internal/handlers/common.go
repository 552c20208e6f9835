// internal/handlers/common.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
	"github.com/xingluo6/redmart/internal/utils"
)

// handleRepoError maps the repository error taxonomy onto HTTP responses.
func handleRepoError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, "Record not found")
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, gin.H{
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	case errors.Is(err, store.ErrUnavailable):
		utils.ServiceUnavailableResponse(c, "Data store is unreachable")
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// fieldMapFromJSON converts a decoded JSON object into the stored string
// field map, mirroring the store's serialize-everything-to-strings rule.
func fieldMapFromJSON(raw map[string]interface{}) models.FieldMap {
	fields := make(models.FieldMap, len(raw))
	for k, v := range raw {
		fields[k] = fmt.Sprint(v)
	}
	return fields
}
