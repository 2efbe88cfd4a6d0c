package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qkart/models"
)

type ProductRepository struct{ base }

func NewProductRepository(coll *mongo.Collection, timeout time.Duration) *ProductRepository {
	return &ProductRepository{base{coll: coll, timeout: timeout}}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find product", err)
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) Search(ctx context.Context, value string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
	}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, wrap("find products", err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, wrap("decode products", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return wrap("insert product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Cost != nil {
		set["cost"] = *patch.Cost
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("update product", err)
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, wrap("delete product", err)
	}
	return res.DeletedCount == 1, nil
}
