package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCart_IndexOf(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	cart := Cart{CartItems: []CartItem{
		{Product: Product{ID: a}, Quantity: 1},
		{Product: Product{ID: b}, Quantity: 2},
	}}

	assert.Equal(t, 0, cart.IndexOf(a))
	assert.Equal(t, 1, cart.IndexOf(b))
	assert.Equal(t, -1, cart.IndexOf(primitive.NewObjectID()))
	assert.Equal(t, -1, cart.IndexOf(primitive.NilObjectID))
}

func TestUser_HasSetNonDefaultAddress(t *testing.T) {
	u := User{Address: "ADDRESS_NOT_SET"}
	assert.False(t, u.HasSetNonDefaultAddress("ADDRESS_NOT_SET"))

	u.Address = ""
	assert.False(t, u.HasSetNonDefaultAddress("ADDRESS_NOT_SET"))

	u.Address = "221B Baker Street, London NW1 6XE"
	assert.True(t, u.HasSetNonDefaultAddress("ADDRESS_NOT_SET"))
}
