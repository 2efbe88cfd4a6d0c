package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection     = "users"
	ProductsCollection  = "products"
	CartsCollection     = "carts"
	OrdersCollection    = "orders"
	BlacklistCollection = "blacklist_tokens"
)

type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database

	UserCollection      *mongo.Collection
	ProductCollection   *mongo.Collection
	CartCollection      *mongo.Collection
	OrderCollection     *mongo.Collection
	BlacklistCollection *mongo.Collection
}

func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	return &Mongo{
		Client:              client,
		DB:                  db,
		UserCollection:      db.Collection(UsersCollection),
		ProductCollection:   db.Collection(ProductsCollection),
		CartCollection:      db.Collection(CartsCollection),
		OrderCollection:     db.Collection(OrdersCollection),
		BlacklistCollection: db.Collection(BlacklistCollection),
	}, nil
}

// EnsureIndexes creates the unique indexes the cart invariants rely on: one
// user per email, one cart per email, one receipt per checkout id.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{m.UserCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{m.CartCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{m.OrderCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "checkoutId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{m.BlacklistCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", s.coll.Name(), err)
		}
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
