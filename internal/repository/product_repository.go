// internal/repository/product_repository.go
package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xingluo6/redmart/internal/cache"
	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
	"github.com/xingluo6/redmart/internal/utils"
)

// ProductRepository owns the product primary records and every index derived
// from them: the all-ids set, the per-category sets, the price sorted set,
// and the per-product sales ledger.
type ProductRepository struct {
	store store.Store
	cache *cache.ProductCache
}

func NewProductRepository(s store.Store, c *cache.ProductCache) *ProductRepository {
	return &ProductRepository{store: s, cache: c}
}

// Create writes the primary record and all index entries in one batch and
// returns the id, assigning a fresh one when the caller left it empty.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	fields := p.Fields()
	if err := models.ValidateProductFields(fields); err != nil {
		return "", err
	}

	b := r.store.Batch()
	b.HSet(models.ProductKey(p.ID), fields)
	b.SAdd(models.ProductAllIDsKey, p.ID)
	b.SAdd(models.CategoryKey(p.Category), p.ID)
	b.ZAdd(models.ProductPricesKey, p.Price, p.ID)
	if err := b.Exec(ctx); err != nil {
		return "", err
	}
	return p.ID, nil
}

// Get reads through the detail cache: hit deserializes the snapshot, miss
// loads the primary record and populates the cache.
func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	if cached, err := r.cache.Get(ctx, id); err != nil {
		return nil, err
	} else if cached != nil {
		return models.ProductFromFields(cached), nil
	}

	fields, err := r.store.HGetAll(ctx, models.ProductKey(id))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, models.ErrNotFound
	}
	if err := r.cache.Put(ctx, id, models.FieldMap(fields)); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Failed to populate product cache")
	}
	return models.ProductFromFields(models.FieldMap(fields)), nil
}

// Update merges partial fields into the primary record. The old category is
// read before the merge so the id can be moved between category sets in the
// same batch; a changed price re-scores the price index. The cache entry is
// evicted afterwards.
func (r *ProductRepository) Update(ctx context.Context, id string, fields models.FieldMap) error {
	if err := models.ValidateProductFields(fields); err != nil {
		return err
	}

	existing, err := r.store.HGetAll(ctx, models.ProductKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}
	oldCategory := existing["category"]

	b := r.store.Batch()
	b.HSet(models.ProductKey(id), fields)
	if raw, ok := fields["price"]; ok {
		price, _ := strconv.ParseFloat(raw, 64)
		b.ZAdd(models.ProductPricesKey, price, id)
	}
	if newCategory, ok := fields["category"]; ok && oldCategory != "" && newCategory != oldCategory {
		b.SRem(models.CategoryKey(oldCategory), id)
		b.SAdd(models.CategoryKey(newCategory), id)
	}
	if err := b.Exec(ctx); err != nil {
		return err
	}
	return r.cache.Invalidate(ctx, id)
}

// IncrementStock adjusts stock by delta without rewriting the record.
func (r *ProductRepository) IncrementStock(ctx context.Context, id string, delta int64) error {
	existing, err := r.store.HGetAll(ctx, models.ProductKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}

	b := r.store.Batch()
	b.HIncrBy(models.ProductKey(id), "stock", delta)
	if err := b.Exec(ctx); err != nil {
		return err
	}
	return r.cache.Invalidate(ctx, id)
}

// Delete removes the primary record and every index entry the product
// participates in, plus its sales ledger key.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.store.HGetAll(ctx, models.ProductKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}
	category := existing["category"]

	b := r.store.Batch()
	b.Del(models.ProductKey(id))
	b.SRem(models.ProductAllIDsKey, id)
	b.ZRem(models.ProductPricesKey, id)
	if category != "" {
		b.SRem(models.CategoryKey(category), id)
	}
	b.Del(models.ProductSalesKey(id))
	if err := b.Exec(ctx); err != nil {
		return err
	}
	return r.cache.Invalidate(ctx, id)
}

// Categories derives the category list by scanning the category index keys,
// so a category with no products is invisible.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	keys, err := r.store.ScanKeys(ctx, models.CategoryKeyGlob)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(keys))
	var categories []string
	for _, key := range keys {
		name := strings.TrimSuffix(strings.TrimPrefix(key, "category:"), ":products")
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories, nil
}

// List performs the full-scan query: every primary record is fetched in one
// batched read, a case-insensitive substring predicate over name, description
// and category filters the set, then one page is sliced out.
func (r *ProductRepository) List(ctx context.Context, params utils.PaginationParams) ([]*models.Product, int, error) {
	ids, err := r.store.SMembers(ctx, models.ProductAllIDsKey)
	if err != nil {
		return nil, 0, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.ProductKey(id)
	}
	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(params.Search)
	var filtered []*models.Product
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		if query != "" && !matchesProduct(fields, query) {
			continue
		}
		filtered = append(filtered, models.ProductFromFields(models.FieldMap(fields)))
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	return utils.Paginate(filtered, params.Page, params.PageSize), len(filtered), nil
}

func matchesProduct(fields map[string]string, query string) bool {
	return strings.Contains(strings.ToLower(fields["name"]), query) ||
		strings.Contains(strings.ToLower(fields["description"]), query) ||
		strings.Contains(strings.ToLower(fields["category"]), query)
}
