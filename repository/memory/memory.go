// Package memory holds in-process implementations of the store interfaces in
// services. All stores created from one DB share its state and its
// transactions.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"qkart/models"
)

type DB struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	products map[primitive.ObjectID]models.Product
	users    map[string]models.User
	carts    map[string]models.Cart
	orders   []models.Order
	revoked  map[string]time.Time

	defaultAddress string

	// FailNext makes the next write of the named kind fail with the given
	// error. Keys: "cart.create", "cart.save", "cart.add", "user.debit",
	// "order.create".
	FailNext map[string]error
}

func NewDB(defaultAddress string) *DB {
	return &DB{
		products:       make(map[primitive.ObjectID]models.Product),
		users:          make(map[string]models.User),
		carts:          make(map[string]models.Cart),
		revoked:        make(map[string]time.Time),
		defaultAddress: defaultAddress,
		FailNext:       make(map[string]error),
	}
}

// WithTransaction runs fn and restores every collection if fn fails.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	snap := db.snapshot()
	db.mu.Unlock()

	if err := fn(ctx); err != nil {
		db.mu.Lock()
		db.restore(snap)
		db.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	products map[primitive.ObjectID]models.Product
	users    map[string]models.User
	carts    map[string]models.Cart
	orders   []models.Order
}

func (db *DB) snapshot() snapshot {
	s := snapshot{
		products: make(map[primitive.ObjectID]models.Product, len(db.products)),
		users:    make(map[string]models.User, len(db.users)),
		carts:    make(map[string]models.Cart, len(db.carts)),
		orders:   append([]models.Order(nil), db.orders...),
	}
	for k, v := range db.products {
		s.products[k] = v
	}
	for k, v := range db.users {
		s.users[k] = v
	}
	for k, v := range db.carts {
		s.carts[k] = copyCart(v)
	}
	return s
}

func (db *DB) restore(s snapshot) {
	db.products = s.products
	db.users = s.users
	db.carts = s.carts
	db.orders = s.orders
}

func (db *DB) fail(kind string) error {
	if err, ok := db.FailNext[kind]; ok {
		delete(db.FailNext, kind)
		return err
	}
	return nil
}

func copyCart(c models.Cart) models.Cart {
	c.CartItems = append([]models.CartItem{}, c.CartItems...)
	return c
}

type ProductStore struct{ db *DB }

func NewProductStore(db *DB) *ProductStore { return &ProductStore{db: db} }

func (s *ProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.products[oid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProductStore) List(_ context.Context) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Product, 0, len(s.db.products))
	for _, p := range s.db.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ProductStore) Search(ctx context.Context, value string) ([]models.Product, error) {
	all, _ := s.List(ctx)
	value = strings.ToLower(value)
	out := []models.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), value) || strings.Contains(strings.ToLower(p.Category), value) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductStore) Create(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.db.products[product.ID] = *product
	return nil
}

func (s *ProductStore) Update(_ context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.products[oid]
	if !ok {
		return nil, nil
	}
	patch.Apply(&p)
	p.UpdatedAt = time.Now()
	s.db.products[oid] = p
	return &p, nil
}

func (s *ProductStore) Delete(_ context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.products[oid]; !ok {
		return false, nil
	}
	delete(s.db.products, oid)
	return true, nil
}

type UserStore struct{ db *DB }

func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[user.Email]; ok {
		return models.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.db.users[user.Email] = *user
	return nil
}

func (s *UserStore) Save(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.users[user.Email] = *user
	return nil
}

func (s *UserStore) Debit(_ context.Context, email string, amount float64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fail("user.debit"); err != nil {
		return false, err
	}
	u, ok := s.db.users[email]
	if !ok || u.WalletMoney < amount {
		return false, nil
	}
	u.WalletMoney -= amount
	s.db.users[email] = u
	return true, nil
}

func (s *UserStore) HasNonDefaultAddress(_ context.Context, user *models.User) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[user.Email]
	if !ok {
		return false, nil
	}
	return u.HasSetNonDefaultAddress(s.db.defaultAddress), nil
}

type CartStore struct{ db *DB }

func NewCartStore(db *DB) *CartStore { return &CartStore{db: db} }

func (s *CartStore) FindByEmail(_ context.Context, email string) (*models.Cart, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.carts[email]
	if !ok {
		return nil, nil
	}
	c = copyCart(c)
	return &c, nil
}

func (s *CartStore) Create(_ context.Context, email, paymentOption string) (*models.Cart, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fail("cart.create"); err != nil {
		return nil, err
	}
	if _, ok := s.db.carts[email]; ok {
		return nil, models.ErrDuplicate
	}
	c := models.Cart{
		ID:            primitive.NewObjectID(),
		Email:         email,
		CartItems:     []models.CartItem{},
		PaymentOption: paymentOption,
	}
	s.db.carts[email] = c
	c = copyCart(c)
	return &c, nil
}

func (s *CartStore) Save(_ context.Context, cart *models.Cart) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fail("cart.save"); err != nil {
		return err
	}
	s.db.carts[cart.Email] = copyCart(*cart)
	return nil
}

func (s *CartStore) AddItem(_ context.Context, cart *models.Cart, item models.CartItem) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fail("cart.add"); err != nil {
		return false, err
	}
	c, ok := s.db.carts[cart.Email]
	if !ok || c.ID != cart.ID || c.IndexOf(item.Product.ID) != -1 {
		return false, nil
	}
	c = copyCart(c)
	c.CartItems = append(c.CartItems, item)
	s.db.carts[cart.Email] = c
	return true, nil
}

type OrderStore struct{ db *DB }

func NewOrderStore(db *DB) *OrderStore { return &OrderStore{db: db} }

func (s *OrderStore) FindByCheckoutID(_ context.Context, email, checkoutID string) (*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range s.db.orders {
		if o.Email == email && o.CheckoutID == checkoutID {
			return &o, nil
		}
	}
	return nil, nil
}

func (s *OrderStore) Create(_ context.Context, order *models.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.fail("order.create"); err != nil {
		return err
	}
	for _, o := range s.db.orders {
		if o.CheckoutID == order.CheckoutID {
			return models.ErrDuplicate
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.db.orders = append(s.db.orders, *order)
	return nil
}

func (s *OrderStore) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Order{}
	for i := len(s.db.orders) - 1; i >= 0; i-- {
		if s.db.orders[i].Email == email {
			out = append(out, s.db.orders[i])
		}
	}
	return out, nil
}

func (s *OrderStore) List(_ context.Context) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Order, 0, len(s.db.orders))
	for i := len(s.db.orders) - 1; i >= 0; i-- {
		out = append(out, s.db.orders[i])
	}
	return out, nil
}

type TokenStore struct{ db *DB }

func NewTokenStore(db *DB) *TokenStore { return &TokenStore{db: db} }

func (s *TokenStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.revoked[token] = expiresAt
	return nil
}

func (s *TokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.revoked[token]
	return ok, nil
}
