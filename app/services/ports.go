package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// UserStore is the persistence surface the cart service depends on.
// Satisfied by repositories.UserRepository; tests substitute fakes.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddCartItem(ctx context.Context, userID, productID primitive.ObjectID) error
	DecreaseCartItem(ctx context.Context, userID, productID primitive.ObjectID) error
	PullCartItem(ctx context.Context, userID, productID primitive.ObjectID) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

// ProductStore is the catalog surface read services depend on.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Paginate(ctx context.Context, req paginate.Request) ([]models.Product, paginate.Meta, error)
}

// PostStore is the feed surface post services depend on.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	Paginate(ctx context.Context, req paginate.Request) ([]models.Post, paginate.Meta, error)
}
