package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("repositories: not found")

// caseInsensitive matches the collation of the unique email index.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

// UserRepository handles database operations for User, including the
// cart sub-document. Cart mutations use atomic update operators so two
// concurrent requests for the same user never lose an update.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection(database.ColUsers)}
}

// FindByEmail looks up a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveMongoOp("users.findByEmail", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetCollation(&caseInsensitive)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, err
}

// FindByID looks up a user by its ObjectID.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	defer metrics.ObserveMongoOp("users.findByID", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, err
}

// FindByIDs returns the users matching ids; missing ids are absent from
// the result.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	defer metrics.ObserveMongoOp("users.findByIDs", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a new user document.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveMongoOp("users.create", time.Now())

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Cart.Items == nil {
		user.Cart.Items = []models.CartItem{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// AddCartItem increments the quantity of the matching line item, or
// inserts a fresh {productId, quantity: 1} when no item exists. Both
// branches are single atomic updates; the $ne guard on the insert keeps
// a racing increment from creating a duplicate line.
func (r *UserRepository) AddCartItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	defer metrics.ObserveMongoOp("users.cartAdd", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.items.productId": productID},
		bson.M{
			"$inc": bson.M{"cart.items.$.quantity": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.items.productId": bson.M{"$ne": productID}},
		bson.M{
			"$push": bson.M{"cart.items": models.CartItem{ProductID: productID, Quantity: 1}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Lost the race to an increment, or the user vanished.
		var u models.User
		ferr := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
		if errors.Is(ferr, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
	}
	return nil
}

// DecreaseCartItem lowers the matching line item's quantity by one, and
// removes it entirely when the quantity was 1. Decreasing a product that
// is not in the cart matches nothing and is a no-op.
func (r *UserRepository) DecreaseCartItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	defer metrics.ObserveMongoOp("users.cartDecrease", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id": userID,
			"cart.items": bson.M{"$elemMatch": bson.M{
				"productId": productID,
				"quantity":  bson.M{"$gt": 1},
			}},
		},
		bson.M{
			"$inc": bson.M{"cart.items.$.quantity": -1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Quantity was 1 (or the item is absent): pull any matching item
	// whose quantity cannot go lower.
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"cart.items": bson.M{
				"productId": productID,
				"quantity":  bson.M{"$lte": 1},
			}},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	return err
}

// PullCartItem removes the line item for productID regardless of its
// quantity. Pulling an absent item is a no-op.
func (r *UserRepository) PullCartItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	defer metrics.ObserveMongoOp("users.cartPull", time.Now())

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"cart.items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	return err
}

// ClearCart empties the user's cart. Idempotent.
func (r *UserRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	defer metrics.ObserveMongoOp("users.cartClear", time.Now())

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"cart.items": []models.CartItem{},
			"updatedAt":  time.Now().UTC(),
		}})
	return err
}
