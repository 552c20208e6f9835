// internal/repository/user_repository.go
package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
	"github.com/xingluo6/redmart/internal/utils"
)

// UserRepository owns the user primary records, the all-ids set, and each
// user's order-id history list.
type UserRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	b := r.store.Batch()
	b.HSet(models.UserKey(u.ID), u.Fields())
	b.SAdd(models.UserAllIDsKey, u.ID)
	if err := b.Exec(ctx); err != nil {
		return "", err
	}
	return u.ID, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	fields, err := r.store.HGetAll(ctx, models.UserKey(id))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, models.ErrNotFound
	}
	return models.UserFromFields(models.FieldMap(fields)), nil
}

// GetWithOrders returns the user and their order-id history, newest first.
func (r *UserRepository) GetWithOrders(ctx context.Context, id string) (*models.UserWithOrders, error) {
	user, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orderIDs, err := r.store.LRange(ctx, models.UserOrdersKey(id), 0, -1)
	if err != nil {
		return nil, err
	}
	return &models.UserWithOrders{User: user, OrderIDs: orderIDs}, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields models.FieldMap) error {
	existing, err := r.store.HGetAll(ctx, models.UserKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}

	b := r.store.Batch()
	b.HSet(models.UserKey(id), fields)
	return b.Exec(ctx)
}

// Delete removes the user's record, membership entry and order-history list.
// The orders themselves survive; cascading into another user's purchases is
// a business decision this layer does not make.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.store.HGetAll(ctx, models.UserKey(id))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return models.ErrNotFound
	}

	b := r.store.Batch()
	b.Del(models.UserKey(id))
	b.SRem(models.UserAllIDsKey, id)
	b.Del(models.UserOrdersKey(id))
	return b.Exec(ctx)
}

// List is the full-scan query over users; the predicate covers username and
// email.
func (r *UserRepository) List(ctx context.Context, params utils.PaginationParams) ([]*models.User, int, error) {
	ids, err := r.store.SMembers(ctx, models.UserAllIDsKey)
	if err != nil {
		return nil, 0, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.UserKey(id)
	}
	records, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(params.Search)
	var filtered []*models.User
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(fields["username"]), query) &&
			!strings.Contains(strings.ToLower(fields["email"]), query) {
			continue
		}
		filtered = append(filtered, models.UserFromFields(models.FieldMap(fields)))
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	return utils.Paginate(filtered, params.Page, params.PageSize), len(filtered), nil
}
