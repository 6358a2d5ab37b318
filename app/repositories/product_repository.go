package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

const productCacheTTL = 5 * time.Minute

// ProductRepository handles catalog reads and writes.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection(database.ColProducts)}
}

// FindByID returns one product. Single-product lookups are cached.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product

	key := "product:" + id.Hex()
	if cache.Get(ctx, key, &product) {
		return product, nil
	}

	defer metrics.ObserveMongoOp("products.findByID", time.Now())
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return product, ErrNotFound
	}
	if err != nil {
		return product, err
	}

	_ = cache.Set(ctx, key, product, productCacheTTL)
	return product, nil
}

// FindByIDs returns the products matching ids, in no particular order.
// Missing ids are silently absent from the result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	defer metrics.ObserveMongoOp("products.findByIDs", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Paginate returns one page of the catalog, newest first, plus the
// pagination meta for the full collection.
func (r *ProductRepository) Paginate(ctx context.Context, req paginate.Request) ([]models.Product, paginate.Meta, error) {
	defer metrics.ObserveMongoOp("products.paginate", time.Now())

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(req.Skip()).
		SetLimit(int64(req.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("decode products: %w", err)
	}

	return products, paginate.NewMeta(req, total, len(products)), nil
}

// Create persists a new product and invalidates nothing: list pages are
// not cached, and the per-product cache is keyed by the new ID.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveMongoOp("products.create", time.Now())

	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now

	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}
