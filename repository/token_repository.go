package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"qkart/models"
)

// TokenRepository stores logged-out tokens. A TTL index on expiresAt lets
// MongoDB drop them once they could no longer be used anyway.
type TokenRepository struct{ base }

func NewTokenRepository(coll *mongo.Collection, timeout time.Duration) *TokenRepository {
	return &TokenRepository{base{coll: coll, timeout: timeout}}
}

func (r *TokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, bson.M{"token": token, "expiresAt": expiresAt})
	if err != nil {
		err = wrap("revoke token", err)
		if errors.Is(err, models.ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"token": token})
	if err != nil {
		return false, wrap("check token", err)
	}
	return n > 0, nil
}
