package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qkart/models"
)

type OrderRepository struct{ base }

func NewOrderRepository(coll *mongo.Collection, timeout time.Duration) *OrderRepository {
	return &OrderRepository{base{coll: coll, timeout: timeout}}
}

func (r *OrderRepository) FindByCheckoutID(ctx context.Context, email, checkoutID string) (*models.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"email": email, "checkoutId": checkoutID}).Decode(&order)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find order", err)
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return wrap("insert order", err)
	}
	return nil
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrap("find orders", err)
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, wrap("decode orders", err)
	}
	return orders, nil
}
