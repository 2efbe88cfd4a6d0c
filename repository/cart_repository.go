package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"qkart/models"
)

type CartRepository struct{ base }

func NewCartRepository(coll *mongo.Collection, timeout time.Duration) *CartRepository {
	return &CartRepository{base{coll: coll, timeout: timeout}}
}

func (r *CartRepository) FindByEmail(ctx context.Context, email string) (*models.Cart, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&cart)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find cart", err)
	}
	if cart.CartItems == nil {
		cart.CartItems = []models.CartItem{}
	}
	return &cart, nil
}

// Create fails with models.ErrDuplicate when the user already owns a cart.
func (r *CartRepository) Create(ctx context.Context, email, paymentOption string) (*models.Cart, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cart := &models.Cart{
		ID:            primitive.NewObjectID(),
		Email:         email,
		CartItems:     []models.CartItem{},
		PaymentOption: paymentOption,
	}
	if _, err := r.coll.InsertOne(ctx, cart); err != nil {
		return nil, wrap("insert cart", err)
	}
	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	items := cart.CartItems
	if items == nil {
		items = []models.CartItem{}
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"cartItems": items, "paymentOption": cart.PaymentOption}},
	)
	if err != nil {
		return wrap("save cart", err)
	}
	return nil
}

func (r *CartRepository) AddItem(ctx context.Context, cart *models.Cart, item models.CartItem) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "cartItems.product._id": bson.M{"$ne": item.Product.ID}},
		bson.M{"$push": bson.M{"cartItems": item}},
	)
	if err != nil {
		return false, wrap("add cart item", err)
	}
	return res.MatchedCount == 1, nil
}
