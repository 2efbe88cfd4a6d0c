package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qkart/apierror"
	"qkart/models"
)

const (
	MsgNoCart               = "User does not have a cart"
	MsgNoCartUsePost        = "User does not have a cart. Use POST to create cart and add a product"
	MsgCartCreationFailed   = "User cart creation failed"
	MsgProductAlreadyInCart = "Product already in cart. Use the cart sidebar to update or remove product from cart"
	MsgProductNotInDatabase = "Product doesn't exist in database"
	MsgProductNotInCart     = "Product not in cart"
	MsgCartEmpty            = "Cart is empty"
	MsgAddressNotSet        = "Address not set"
	MsgInsufficientMoney    = "User has insufficient money to process"
	MsgInvalidQuantity      = "Quantity must be a positive integer"
	MsgCartBusy             = "Cart is busy, retry"
)

type CartDeps struct {
	Carts    CartStore
	Products ProductStore
	Users    UserStore
	Orders   OrderStore
	Tx       Transactor
	Locker   Locker

	// DefaultPaymentOption is stamped on every cart when it is created.
	DefaultPaymentOption string
	Logger               zerolog.Logger
}

type CartService struct {
	carts    CartStore
	products ProductStore
	users    UserStore
	orders   OrderStore
	tx       Transactor
	locker   Locker

	defaultPaymentOption string
	log                  zerolog.Logger
	now                  func() time.Time
}

func NewCartService(deps CartDeps) *CartService {
	return &CartService{
		carts:                deps.Carts,
		products:             deps.Products,
		users:                deps.Users,
		orders:               deps.Orders,
		tx:                   deps.Tx,
		locker:               deps.Locker,
		defaultPaymentOption: deps.DefaultPaymentOption,
		log:                  deps.Logger.With().Str("component", "cart").Logger(),
		now:                  time.Now,
	}
}

func (s *CartService) GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, apierror.NotFound(MsgNoCart)
	}
	return cart, nil
}

func (s *CartService) AddProductToCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apierror.BadRequest(MsgInvalidQuantity)
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apierror.BadRequest(MsgProductNotInDatabase)
	}

	release, err := s.lock(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch cart", err)
	}
	if cart == nil {
		cart, err = s.carts.Create(ctx, user.Email, s.defaultPaymentOption)
		if err != nil {
			return nil, apierror.Internal(MsgCartCreationFailed, err)
		}
		if cart == nil {
			return nil, apierror.Internal(MsgCartCreationFailed, nil)
		}
		s.log.Info().Str("email", user.Email).Msg("cart created")
	}

	if cart.IndexOf(oid) != -1 {
		return nil, apierror.BadRequest(MsgProductAlreadyInCart)
	}

	product, err := s.findProduct(ctx, oid)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{Product: *product, Quantity: quantity}
	added, err := s.carts.AddItem(ctx, cart, item)
	if err != nil {
		return nil, apierror.Internal("Failed to save cart", err)
	}
	if !added {
		return nil, apierror.BadRequest(MsgProductAlreadyInCart)
	}
	cart.CartItems = append(cart.CartItems, item)
	return cart, nil
}

// UpdateProductInCart replaces the quantity of a product already in the cart.
func (s *CartService) UpdateProductInCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apierror.BadRequest(MsgInvalidQuantity)
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apierror.BadRequest(MsgProductNotInDatabase)
	}

	release, err := s.lock(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, apierror.BadRequest(MsgNoCartUsePost)
	}

	if _, err := s.findProduct(ctx, oid); err != nil {
		return nil, err
	}

	idx := cart.IndexOf(oid)
	if idx == -1 {
		return nil, apierror.BadRequest(MsgProductNotInCart)
	}
	cart.CartItems[idx].Quantity = quantity

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apierror.Internal("Failed to save cart", err)
	}
	return cart, nil
}

func (s *CartService) DeleteProductFromCart(ctx context.Context, user *models.User, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return apierror.BadRequest(MsgProductNotInCart)
	}

	release, err := s.lock(ctx, user.Email)
	if err != nil {
		return err
	}
	defer release()

	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return apierror.Internal("Failed to fetch cart", err)
	}
	if cart == nil {
		return apierror.BadRequest(MsgNoCart)
	}

	idx := cart.IndexOf(oid)
	if idx == -1 {
		return apierror.BadRequest(MsgProductNotInCart)
	}
	cart.CartItems = append(cart.CartItems[:idx], cart.CartItems[idx+1:]...)

	if err := s.carts.Save(ctx, cart); err != nil {
		return apierror.Internal("Failed to save cart", err)
	}
	return nil
}

// Checkout debits the cart total from the user's wallet, empties the cart and
// records a receipt, all in one transaction. A non-empty checkoutID makes the
// call idempotent: replaying it returns the receipt of the first success.
// The replay lookup runs before the cart checks because a successful checkout
// leaves the cart empty.
func (s *CartService) Checkout(ctx context.Context, user *models.User, checkoutID string) (*models.Order, error) {
	release, err := s.lock(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	if checkoutID != "" {
		prev, err := s.orders.FindByCheckoutID(ctx, user.Email, checkoutID)
		if err != nil {
			return nil, apierror.Internal("Failed to fetch order", err)
		}
		if prev != nil {
			s.log.Info().Str("email", user.Email).Str("checkout_id", checkoutID).Msg("checkout replayed")
			return prev, nil
		}
	} else {
		checkoutID = uuid.NewString()
	}

	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, apierror.NotFound(MsgNoCart)
	}
	if cart.IsEmpty() {
		return nil, apierror.BadRequest(MsgCartEmpty)
	}

	hasAddress, err := s.users.HasNonDefaultAddress(ctx, user)
	if err != nil {
		return nil, apierror.Internal("Failed to check address", err)
	}
	if !hasAddress {
		return nil, apierror.BadRequest(MsgAddressNotSet)
	}

	total := CartTotal(cart)
	if total.GreaterThan(decimal.NewFromFloat(user.WalletMoney)) {
		return nil, apierror.BadRequest(MsgInsufficientMoney)
	}
	amount := total.InexactFloat64()

	order := &models.Order{
		CheckoutID:    checkoutID,
		Email:         user.Email,
		Items:         cart.CartItems,
		Total:         amount,
		PaymentOption: cart.PaymentOption,
		CreatedAt:     s.now(),
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.users.Debit(ctx, user.Email, amount)
		if err != nil {
			return apierror.Internal("Failed to debit wallet", err)
		}
		if !ok {
			return apierror.BadRequest(MsgInsufficientMoney)
		}

		emptied := *cart
		emptied.CartItems = []models.CartItem{}
		if err := s.carts.Save(ctx, &emptied); err != nil {
			return apierror.Internal("Failed to clear cart", err)
		}

		if err := s.orders.Create(ctx, order); err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return apierror.Conflict("Checkout already processed")
			}
			return apierror.Internal("Failed to record order", err)
		}
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}

	user.WalletMoney = decimal.NewFromFloat(user.WalletMoney).Sub(total).InexactFloat64()
	s.log.Info().
		Str("email", user.Email).
		Str("checkout_id", checkoutID).
		Float64("total", amount).
		Int("items", len(order.Items)).
		Msg("checkout completed")
	return order, nil
}

func (s *CartService) ListOrders(ctx context.Context, user *models.User) ([]models.Order, error) {
	orders, err := s.orders.ListByEmail(ctx, user.Email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *CartService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

// CartTotal sums cost × quantity over the cart in decimal arithmetic.
func CartTotal(cart *models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.CartItems {
		line := decimal.NewFromFloat(item.Product.Cost).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

func (s *CartService) findProduct(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID.Hex())
	if err != nil {
		return nil, apierror.Internal("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apierror.BadRequest(MsgProductNotInDatabase)
	}
	return product, nil
}

func (s *CartService) lock(ctx context.Context, email string) (func(), error) {
	release, err := s.locker.Acquire(ctx, "cart:lock:"+email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("cart lock not acquired")
		return nil, apierror.Conflict(MsgCartBusy)
	}
	return release, nil
}
