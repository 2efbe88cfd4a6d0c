package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Category  string             `bson:"category" json:"category" binding:"required"`
	Cost      float64            `bson:"cost" json:"cost" binding:"gte=0"`
	Rating    int                `bson:"rating" json:"rating" binding:"gte=0,lte=5"`
	Image     string             `bson:"image" json:"image" binding:"omitempty,url"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch holds the fields an admin update may change. Nil fields are
// left untouched.
type ProductPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Cost     *float64 `json:"cost" binding:"omitempty,gte=0"`
	Rating   *int     `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Image    *string  `json:"image" binding:"omitempty,url"`
}

func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Cost != nil {
		product.Cost = *p.Cost
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
}
