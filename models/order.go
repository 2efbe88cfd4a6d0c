package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is the receipt written by a successful checkout. CheckoutID is unique
// so a replayed checkout finds the receipt instead of debiting twice.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CheckoutID    string             `bson:"checkoutId" json:"checkoutId"`
	Email         string             `bson:"email" json:"email"`
	Items         []CartItem         `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	PaymentOption string             `bson:"paymentOption" json:"paymentOption"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
