package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem keeps a snapshot of the product taken when it was added.
type CartItem struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	CartItems     []CartItem         `bson:"cartItems" json:"cartItems"`
	PaymentOption string             `bson:"paymentOption" json:"paymentOption"`
}

// IndexOf returns the position of the product in the cart, or -1.
func (c *Cart) IndexOf(productID primitive.ObjectID) int {
	for i, item := range c.CartItems {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) IsEmpty() bool {
	return len(c.CartItems) == 0
}
