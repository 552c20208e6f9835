// internal/models/order.go
package models

import "strconv"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	OrderDate   string      `json:"order_date"`
	TotalAmount float64     `json:"total_amount"`
	Country     string      `json:"country"`
	Status      OrderStatus `json:"status"`

	// Items preserve source order; not part of the primary record.
	Items []OrderItem `json:"items,omitempty"`
}

func (o *Order) Fields() FieldMap {
	return FieldMap{
		"order_id":     o.ID,
		"user_id":      o.UserID,
		"order_date":   o.OrderDate,
		"total_amount": formatFloat(o.TotalAmount),
		"country":      o.Country,
		"status":       string(o.Status),
	}
}

func OrderFromFields(f FieldMap) *Order {
	return &Order{
		ID:          f["order_id"],
		UserID:      f["user_id"],
		OrderDate:   f["order_date"],
		TotalAmount: parseFloat(f["total_amount"]),
		Country:     f["country"],
		Status:      OrderStatus(f["status"]),
	}
}

// OrderItem is owned exclusively by one order; its composite id is
// (order id, sequence index).
type OrderItem struct {
	OrderID     string  `json:"order_id"`
	Index       int     `json:"index"`
	ProductRef  string  `json:"product_ref"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// TotalPrice is derived on read and never stored.
func (i *OrderItem) TotalPrice() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

func (i *OrderItem) Fields() FieldMap {
	return FieldMap{
		"product_ref": i.ProductRef,
		"description": i.Description,
		"quantity":    strconv.Itoa(i.Quantity),
		"unit_price":  formatFloat(i.UnitPrice),
	}
}

func OrderItemFromFields(orderID string, idx int, f FieldMap) *OrderItem {
	return &OrderItem{
		OrderID:     orderID,
		Index:       idx,
		ProductRef:  f["product_ref"],
		Description: f["description"],
		Quantity:    parseInt(f["quantity"]),
		UnitPrice:   parseFloat(f["unit_price"]),
	}
}

// ValidateOrderFields checks numeric invariants before an order write.
func ValidateOrderFields(f FieldMap) error {
	if raw, ok := f["total_amount"]; ok {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return NewValidationError("total_amount", "must be numeric")
		}
	}
	return nil
}

// ValidateOrderItem checks a line item before it is written.
func ValidateOrderItem(i *OrderItem) error {
	if i.Quantity <= 0 {
		return NewValidationError("quantity", "must be a positive integer")
	}
	if i.UnitPrice < 0 {
		return NewValidationError("unit_price", "must be non-negative")
	}
	return nil
}
