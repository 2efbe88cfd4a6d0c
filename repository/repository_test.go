package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qkart/database"
	"qkart/models"
)

const testTimeout = 5 * time.Second

func setupMongo(t *testing.T) *database.Mongo {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	m, err := database.ConnectMongo(ctx, uri, fmt.Sprintf("qkart_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	require.NoError(t, m.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = m.DB.Drop(context.Background())
		_ = m.Close(context.Background())
	})
	return m
}

func TestCartRepository_OneCartPerEmail(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	carts := NewCartRepository(m.CartCollection, testTimeout)

	missing, err := carts.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cart, err := carts.Create(ctx, "a@b.c", "PAYMENT_OPTION_DEFAULT")
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)

	_, err = carts.Create(ctx, "a@b.c", "PAYMENT_OPTION_DEFAULT")
	assert.ErrorIs(t, err, models.ErrDuplicate)

	cart.CartItems = append(cart.CartItems, models.CartItem{Product: models.Product{Name: "Shoe", Cost: 50}, Quantity: 2})
	require.NoError(t, carts.Save(ctx, cart))

	got, err := carts.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	require.Len(t, got.CartItems, 1)
	assert.Equal(t, 2, got.CartItems[0].Quantity)
}

func TestUserRepository_DebitAndAddress(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	users := NewUserRepository(m.UserCollection, testTimeout, "ADDRESS_NOT_SET")

	user := &models.User{Email: "a@b.c", WalletMoney: 250, Address: "ADDRESS_NOT_SET"}
	require.NoError(t, users.Create(ctx, user))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Email: "a@b.c"}), models.ErrDuplicate)

	ok, err := users.HasNonDefaultAddress(ctx, user)
	require.NoError(t, err)
	assert.False(t, ok)

	user.Address = "12 Residency Road, Bengaluru 560025"
	require.NoError(t, users.Save(ctx, user))
	ok, err = users.HasNonDefaultAddress(ctx, user)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Debit(ctx, "a@b.c", 251)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.Debit(ctx, "a@b.c", 250)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := users.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.WalletMoney)
}

func TestTransactor_RollsBack(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	users := NewUserRepository(m.UserCollection, testTimeout, "ADDRESS_NOT_SET")
	require.NoError(t, users.Create(ctx, &models.User{Email: "a@b.c", WalletMoney: 100}))

	tx := NewTransactor(m.Client)
	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		ok, err := users.Debit(ctx, "a@b.c", 40)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	if err != nil && !errors.Is(err, boom) {
		t.Skipf("transactions not supported by this deployment: %v", err)
	}
	require.ErrorIs(t, err, boom)

	got, err := users.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.WalletMoney)
}

func TestProductRepository_Search(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	products := NewProductRepository(m.ProductCollection, testTimeout)

	for _, p := range []models.Product{
		{Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150},
		{Name: "Atomic Habits", Category: "Books", Cost: 12},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}

	got, err := products.Search(ctx, "fash")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tan Leatherette Weekender Duffle", got[0].Name)

	got, err = products.Search(ctx, "(")
	require.NoError(t, err)
	assert.Empty(t, got)

	p, err := products.FindByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestOrderRepository_UniqueCheckoutID(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	orders := NewOrderRepository(m.OrderCollection, testTimeout)

	require.NoError(t, orders.Create(ctx, &models.Order{CheckoutID: "c1", Email: "a@b.c", Total: 10, CreatedAt: time.Now()}))
	assert.ErrorIs(t, orders.Create(ctx, &models.Order{CheckoutID: "c1", Email: "a@b.c"}), models.ErrDuplicate)

	o, err := orders.FindByCheckoutID(ctx, "a@b.c", "c1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 10.0, o.Total)

	list, err := orders.ListByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCartRepository_AddItemSkipsPresentProduct(t *testing.T) {
	m := setupMongo(t)
	ctx := context.Background()
	carts := NewCartRepository(m.CartCollection, testTimeout)

	cart, err := carts.Create(ctx, "a@b.c", "PAYMENT_OPTION_DEFAULT")
	require.NoError(t, err)

	item := models.CartItem{Product: models.Product{ID: primitive.NewObjectID(), Name: "Shoe", Cost: 50}, Quantity: 1}
	added, err := carts.AddItem(ctx, cart, item)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = carts.AddItem(ctx, cart, item)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := carts.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Len(t, got.CartItems, 1)
}
