package services

import (
	"context"
	"time"

	"qkart/models"
)

// Find* methods return (nil, nil) when the document does not exist.

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, value string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	// Debit subtracts amount from the wallet only if the balance covers it.
	Debit(ctx context.Context, email string, amount float64) (bool, error)
	HasNonDefaultAddress(ctx context.Context, user *models.User) (bool, error)
}

type CartStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Cart, error)
	Create(ctx context.Context, email, paymentOption string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	// AddItem appends item unless the stored cart already holds that product;
	// it reports false in that case.
	AddItem(ctx context.Context, cart *models.Cart, item models.CartItem) (bool, error)
}

type OrderStore interface {
	FindByCheckoutID(ctx context.Context, email, checkoutID string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

type TokenStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Transactor runs fn so that every store write made with the ctx it receives
// commits together or not at all.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker grants exclusive access to key until release is called.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
