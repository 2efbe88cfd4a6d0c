package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	WalletMoney float64            `bson:"walletMoney" json:"walletMoney"`
	Address     string             `bson:"address" json:"address"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasSetNonDefaultAddress reports whether the user replaced the address a new
// account starts with.
func (u *User) HasSetNonDefaultAddress(defaultAddress string) bool {
	return u.Address != "" && u.Address != defaultAddress
}
