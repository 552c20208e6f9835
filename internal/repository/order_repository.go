// internal/repository/order_repository.go
package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
	"github.com/xingluo6/redmart/internal/utils"
)

// OrderRepository owns order primary records, their item records, the item
// order list, the all-ids set, the owning user's order history, and the
// per-product sales ledger entries written at item creation.
type OrderRepository struct {
	store store.Store
}

func NewOrderRepository(s store.Store) *OrderRepository {
	return &OrderRepository{store: s}
}

// Create writes the order, its items in source order, the sales-ledger entry
// per item and the user history entry as one batch.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (string, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	fields := o.Fields()
	if err := models.ValidateOrderFields(fields); err != nil {
		return "", err
	}
	for i := range o.Items {
		if err := models.ValidateOrderItem(&o.Items[i]); err != nil {
			return "", err
		}
	}

	b := r.store.Batch()
	b.HSet(models.OrderKey(o.ID), fields)
	b.SAdd(models.OrderAllIDsKey, o.ID)
	for i := range o.Items {
		item := &o.Items[i]
		itemID := itemRef(o.ID, i)
		b.HSet(models.OrderItemKey(o.ID, i), item.Fields())
		b.RPush(models.OrderItemsKey(o.ID), itemID)
		b.LPush(models.ProductSalesKey(item.ProductRef), itemID)
	}
	if o.UserID != "" {
		b.LPush(models.UserOrdersKey(o.UserID), o.ID)
	}
	if err := b.Exec(ctx); err != nil {
		return "", err
	}
	return o.ID, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	fields, err := r.store.HGetAll(ctx, models.OrderKey(id))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, models.ErrNotFound
	}
	return models.OrderFromFields(models.FieldMap(fields)), nil
}

// GetWithItems resolves the order and its line items in original order.
// Item totals are computed here, never read from the store.
func (r *OrderRepository) GetWithItems(ctx context.Context, id string) (*models.Order, error) {
	order, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	itemIDs, err := r.store.LRange(ctx, models.OrderItemsKey(id), 0, -1)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(itemIDs))
	for i, itemID := range itemIDs {
		keys[i] = "order_item:" + itemID
	}
	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	order.Items = make([]models.OrderItem, 0, len(records))
	for i, fields := range records {
		if len(fields) == 0 {
			continue
		}
		order.Items = append(order.Items, *models.OrderItemFromFields(id, i, models.FieldMap(fields)))
	}
	return order, nil
}

// UpdateStatus accepts any status value; transition legality is not enforced
// here.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	existing, err := r.store.HGetAll(ctx, models.OrderKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}

	b := r.store.Batch()
	b.HSet(models.OrderKey(id), map[string]string{"status": string(status)})
	return b.Exec(ctx)
}

// Delete cascades to the order's items and removes the order from the owning
// user's history. Sales-ledger entries referencing the deleted items are left
// in place; the ledger is only ever consumed by length.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.store.HGetAll(ctx, models.OrderKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}
	userID := existing["user_id"]

	itemIDs, err := r.store.LRange(ctx, models.OrderItemsKey(id), 0, -1)
	if err != nil {
		return err
	}

	b := r.store.Batch()
	b.Del(models.OrderKey(id))
	b.SRem(models.OrderAllIDsKey, id)
	if userID != "" {
		b.LRem(models.UserOrdersKey(userID), 0, id)
	}
	for _, itemID := range itemIDs {
		b.Del("order_item:" + itemID)
	}
	b.Del(models.OrderItemsKey(id))
	return b.Exec(ctx)
}

// List is the full-scan query over orders; the predicate covers order id,
// user id, country and status.
func (r *OrderRepository) List(ctx context.Context, params utils.PaginationParams) ([]*models.Order, int, error) {
	ids, err := r.store.SMembers(ctx, models.OrderAllIDsKey)
	if err != nil {
		return nil, 0, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.OrderKey(id)
	}
	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(params.Search)
	var filtered []*models.Order
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		if query != "" && !matchesOrder(fields, query) {
			continue
		}
		filtered = append(filtered, models.OrderFromFields(models.FieldMap(fields)))
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	return utils.Paginate(filtered, params.Page, params.PageSize), len(filtered), nil
}

func matchesOrder(fields map[string]string, query string) bool {
	return strings.Contains(strings.ToLower(fields["order_id"]), query) ||
		strings.Contains(strings.ToLower(fields["user_id"]), query) ||
		strings.Contains(strings.ToLower(fields["country"]), query) ||
		strings.Contains(strings.ToLower(fields["status"]), query)
}

// itemRef is the composite item id stored in the item list and sales ledger.
func itemRef(orderID string, idx int) string {
	return orderID + ":" + strconv.Itoa(idx)
}
