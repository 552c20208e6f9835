// internal/repository/user_repository_test.go
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/utils"
)

func sampleUser() *models.User {
	return &models.User{
		Username:         "mwilson",
		Email:            "m.wilson@example.com",
		RegistrationDate: "2021-06-01T09:00:00Z",
		LastLogin:        "2024-04-12T18:30:00Z",
	}
}

func TestUserCreateReadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	u := sampleUser()
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.RegistrationDate, got.RegistrationDate)
	assert.Equal(t, u.LastLogin, got.LastLogin)
}

func TestUserGetWithOrdersNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	users := NewUserRepository(s)
	orders := NewOrderRepository(s)
	ctx := context.Background()

	id, err := users.Create(ctx, sampleUser())
	require.NoError(t, err)

	for _, orderID := range []string{"o1", "o2", "o3"} {
		_, err := orders.Create(ctx, &models.Order{
			ID:          orderID,
			UserID:      id,
			OrderDate:   "2024-01-01T00:00:00",
			TotalAmount: 10,
			Status:      models.OrderStatusPaid,
		})
		require.NoError(t, err)
	}

	detail, err := users.GetWithOrders(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"o3", "o2", "o1"}, detail.OrderIDs)
}

func TestUserDeleteRemovesHistoryButNotOrders(t *testing.T) {
	s, mr := newTestStore(t)
	users := NewUserRepository(s)
	orders := NewOrderRepository(s)
	ctx := context.Background()

	id, err := users.Create(ctx, sampleUser())
	require.NoError(t, err)
	_, err = orders.Create(ctx, &models.Order{ID: "o1", UserID: id, TotalAmount: 5})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, id))

	_, err = users.Get(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, isMember(t, mr, models.UserAllIDsKey, id))
	assert.False(t, mr.Exists(models.UserOrdersKey(id)))

	// The user's orders are not cascaded.
	_, err = orders.Get(ctx, "o1")
	assert.NoError(t, err)
}

func TestUserListSearchesUsernameAndEmail(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	for _, u := range []*models.User{
		{Username: "alice", Email: "alice@shop.example"},
		{Username: "bob", Email: "bob@mail.example"},
		{Username: "carol", Email: "carol@shop.example"},
	} {
		_, err := repo.Create(ctx, u)
		require.NoError(t, err)
	}

	_, total, err := repo.List(ctx, utils.PaginationParams{Page: 1, PageSize: 10, Search: "shop.example"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, total, err = repo.List(ctx, utils.PaginationParams{Page: 1, PageSize: 10, Search: "BOB"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestUserUpdateMissingIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewUserRepository(s)

	err := repo.Update(context.Background(), "ghost", models.FieldMap{"username": "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
