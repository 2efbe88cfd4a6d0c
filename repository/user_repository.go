package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"qkart/models"
)

type UserRepository struct {
	base
	defaultAddress string
}

func NewUserRepository(coll *mongo.Collection, timeout time.Duration, defaultAddress string) *UserRepository {
	return &UserRepository{base: base{coll: coll, timeout: timeout}, defaultAddress: defaultAddress}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return wrap("insert user", err)
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user); err != nil {
		return wrap("save user", err)
	}
	return nil
}

func (r *UserRepository) Debit(ctx context.Context, email string, amount float64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email, "walletMoney": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"walletMoney": -amount}},
	)
	if err != nil {
		return false, wrap("debit wallet", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *UserRepository) HasNonDefaultAddress(ctx context.Context, user *models.User) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"email":   user.Email,
		"address": bson.M{"$nin": bson.A{r.defaultAddress, ""}},
	})
	if err != nil {
		return false, wrap("check address", err)
	}
	return n > 0, nil
}
