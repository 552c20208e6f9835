// internal/models/product.go
package models

import "strconv"

type Product struct {
	ID          string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"created_at"`
}

// Fields serializes the product into its stored field map. Price and stock
// are always written, so they are present and numeric after any full write.
func (p *Product) Fields() FieldMap {
	return FieldMap{
		"product_id":  p.ID,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       formatFloat(p.Price),
		"stock":       strconv.Itoa(p.Stock),
		"created_at":  p.CreatedAt,
	}
}

// ProductFromFields parses a stored field map. Missing fields get defaults
// (0 for numeric fields, empty string for text).
func ProductFromFields(f FieldMap) *Product {
	return &Product{
		ID:          f["product_id"],
		Name:        f["name"],
		Description: f["description"],
		Category:    f["category"],
		Price:       parseFloat(f["price"]),
		Stock:       parseInt(f["stock"]),
		CreatedAt:   f["created_at"],
	}
}

// ValidateProductFields checks the numeric invariants on a partial or full
// field map before it is written.
func ValidateProductFields(f FieldMap) error {
	if raw, ok := f["price"]; ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return NewValidationError("price", "must be numeric")
		}
		if v < 0 {
			return NewValidationError("price", "must be non-negative")
		}
	}
	if raw, ok := f["stock"]; ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError("stock", "must be an integer")
		}
		if v < 0 {
			return NewValidationError("stock", "must be non-negative")
		}
	}
	return nil
}
