// internal/models/common.go
package models

import (
	"errors"
	"fmt"
	"strconv"
)

// FieldMap is the wire form of an entity: every value is stored as a string
// and parsed back to its semantic type on read.
type FieldMap map[string]string

// ErrNotFound is returned when an id has no primary record.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a field that failed type or range validation on write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Key layout. Any storage backend must reproduce these names for interop
// with existing datasets.
func ProductKey(id string) string        { return "product:" + id }
func ProductSalesKey(id string) string   { return "product:" + id + ":sales" }
func CategoryKey(category string) string { return "category:" + category + ":products" }
func UserKey(id string) string           { return "user:" + id }
func UserOrdersKey(id string) string     { return "user:" + id + ":orders" }
func OrderKey(id string) string          { return "order:" + id }
func OrderItemsKey(id string) string     { return "order:" + id + ":items" }
func OrderItemKey(orderID string, idx int) string {
	return fmt.Sprintf("order_item:%s:%d", orderID, idx)
}
func ProductCacheKey(id string) string { return "cache:product_details:" + id }

const (
	ProductAllIDsKey = "product:all_ids"
	ProductPricesKey = "product:prices"
	UserAllIDsKey    = "user:all_ids"
	OrderAllIDsKey   = "order:all_ids"
	CategoryKeyGlob  = "category:*:products"
)

// parseFloat and parseInt tolerate missing or malformed values by
// substituting zero; callers that need strictness use the strict variants.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
