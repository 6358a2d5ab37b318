package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/resources"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

const authFailedMessage = "Auth Failed (Invalid Credentials)"

// CartService owns the cart operations. Every method takes the resolved
// identity explicitly; nothing is read from ambient request state.
type CartService struct {
	users    UserStore
	products ProductStore
}

func NewCartService(users UserStore, products ProductStore) *CartService {
	return &CartService{users: users, products: products}
}

// resolveUser maps the identity to its account document, case-insensitively
// by email. An unresolvable identity is an auth failure, not a 404.
func (s *CartService) resolveUser(ctx context.Context, identity auth.Identity) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, identity.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return user, apperr.E(apperr.AuthFailed, authFailedMessage)
	}
	if err != nil {
		return user, apperr.Wrap(apperr.Internal, "resolve user", err)
	}
	return user, nil
}

// parseProductID validates the raw id before any store access.
func parseProductID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.InvalidArgument, "Invalid request")
	}
	return id, nil
}

// checkProduct re-validates that the referenced product exists.
func (s *CartService) checkProduct(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.E(apperr.NotFound, "Product not found")
		}
		return apperr.Wrap(apperr.Internal, "find product", err)
	}
	return nil
}

// AddToCart adds one unit of the product to the identity's cart, or with
// decrease set, removes one unit (dropping the line at zero; decreasing a
// product that is not in the cart is a no-op). Returns the updated user.
func (s *CartService) AddToCart(ctx context.Context, identity auth.Identity, rawProductID string, decrease bool) (models.User, error) {
	op := "add"
	if decrease {
		op = "decrease"
	}

	user, err := s.addToCart(ctx, identity, rawProductID, decrease)
	metrics.RecordCartOp(op, err)
	if err == nil {
		s.recordActivity(user.ID, "cart."+op, rawProductID)
	}
	return user, err
}

func (s *CartService) addToCart(ctx context.Context, identity auth.Identity, rawProductID string, decrease bool) (models.User, error) {
	productID, err := parseProductID(rawProductID)
	if err != nil {
		return models.User{}, err
	}
	if err := s.checkProduct(ctx, productID); err != nil {
		return models.User{}, err
	}

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return models.User{}, err
	}

	if decrease {
		err = s.users.DecreaseCartItem(ctx, user.ID, productID)
	} else {
		err = s.users.AddCartItem(ctx, user.ID, productID)
	}
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "update cart", err)
	}

	return s.reload(ctx, user.ID)
}

// RemoveFromCart drops the product's line item entirely, regardless of
// quantity. Removing an absent product is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, identity auth.Identity, rawProductID string) (models.User, error) {
	user, err := s.removeFromCart(ctx, identity, rawProductID)
	metrics.RecordCartOp("remove", err)
	if err == nil {
		s.recordActivity(user.ID, "cart.remove", rawProductID)
	}
	return user, err
}

func (s *CartService) removeFromCart(ctx context.Context, identity auth.Identity, rawProductID string) (models.User, error) {
	productID, err := parseProductID(rawProductID)
	if err != nil {
		return models.User{}, err
	}
	if err := s.checkProduct(ctx, productID); err != nil {
		return models.User{}, err
	}

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return models.User{}, err
	}

	if err := s.users.PullCartItem(ctx, user.ID, productID); err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "update cart", err)
	}

	return s.reload(ctx, user.ID)
}

// ClearCart empties the identity's cart. Idempotent.
func (s *CartService) ClearCart(ctx context.Context, identity auth.Identity) (models.User, error) {
	user, err := s.clearCart(ctx, identity)
	metrics.RecordCartOp("clear", err)
	if err == nil {
		s.recordActivity(user.ID, "cart.clear", "")
	}
	return user, err
}

func (s *CartService) clearCart(ctx context.Context, identity auth.Identity) (models.User, error) {
	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return models.User{}, err
	}

	if err := s.users.ClearCart(ctx, user.ID); err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "clear cart", err)
	}

	return s.reload(ctx, user.ID)
}

// GetCart joins the identity's cart items with their catalog products.
func (s *CartService) GetCart(ctx context.Context, identity auth.Identity) (resources.CartPayload, error) {
	user, err := s.users.FindByID(ctx, identity.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return resources.CartPayload{}, apperr.E(apperr.AuthFailed, authFailedMessage)
	}
	if err != nil {
		return resources.CartPayload{}, apperr.Wrap(apperr.Internal, "find user", err)
	}

	ids := collection.Map(user.Cart.Items, func(it models.CartItem) primitive.ObjectID {
		return it.ProductID
	})

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return resources.CartPayload{}, apperr.Wrap(apperr.Internal, "find cart products", err)
	}

	byID := collection.KeyBy(products, func(p models.Product) string { return p.ID.Hex() })
	return resources.NewCartPayload(user.ID, user.Cart.Items, byID), nil
}

func (s *CartService) reload(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Internal, "reload user", err)
	}
	return user, nil
}

func (s *CartService) recordActivity(userID primitive.ObjectID, action, subject string) {
	err := queue.Dispatch(&jobs.ActivityJob{
		UserID:  userID.Hex(),
		Action:  action,
		Subject: subject,
	})
	if err != nil {
		logger.Warn("cart: dispatch activity job", "action", action, "error", err)
	}
}
