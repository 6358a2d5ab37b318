package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

func cartFixture(t *testing.T) (*services.CartService, auth.Identity, models.Product, models.Product) {
	t.Helper()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Jane",
		Email: "jane@example.com",
	}
	users := newFakeUserStore(user)
	products := newFakeProductStore(
		models.Product{Name: "keyboard", Price: 49.90},
		models.Product{Name: "mouse", Price: 19.90},
	)

	svc := services.NewCartService(users, products)
	identity := auth.Identity{ID: user.ID, Email: user.Email}
	return svc, identity, products.products[0], products.products[1]
}

func TestAddToCartInsertsNewItem(t *testing.T) {
	svc, identity, p1, _ := cartFixture(t)

	user, err := svc.AddToCart(context.Background(), identity, p1.ID.Hex(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, user.Cart.Quantity(p1.ID))
	assert.Len(t, user.Cart.Items, 1)
}

func TestAddToCartIncrementsAndDecreases(t *testing.T) {
	svc, identity, p1, _ := cartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	user, err := svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Cart.Quantity(p1.ID))

	user, err = svc.AddToCart(ctx, identity, p1.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Cart.Quantity(p1.ID))

	// Decreasing at quantity 1 removes the line entirely.
	user, err = svc.AddToCart(ctx, identity, p1.ID.Hex(), true)
	require.NoError(t, err)
	assert.Empty(t, user.Cart.Items)

	// Decreasing an absent item stays a no-op.
	user, err = svc.AddToCart(ctx, identity, p1.ID.Hex(), true)
	require.NoError(t, err)
	assert.Empty(t, user.Cart.Items)
}

func TestAddToCartMalformedID(t *testing.T) {
	svc, identity, _, _ := cartFixture(t)

	_, err := svc.AddToCart(context.Background(), identity, "not-a-hex-id", false)
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, identity, _, _ := cartFixture(t)

	_, err := svc.AddToCart(context.Background(), identity, primitive.NewObjectID().Hex(), false)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestAddToCartUnresolvableUser(t *testing.T) {
	svc, _, p1, _ := cartFixture(t)
	stranger := auth.Identity{ID: primitive.NewObjectID(), Email: "ghost@example.com"}

	_, err := svc.AddToCart(context.Background(), stranger, p1.ID.Hex(), false)
	assert.True(t, apperr.IsKind(err, apperr.AuthFailed))
}

func TestUserResolvedCaseInsensitively(t *testing.T) {
	svc, identity, p1, _ := cartFixture(t)
	identity.Email = "JANE@Example.COM"

	user, err := svc.AddToCart(context.Background(), identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Cart.Quantity(p1.ID))
}

func TestRemoveFromCartDropsLine(t *testing.T) {
	svc, identity, p1, p2 := cartFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
		require.NoError(t, err)
	}
	_, err := svc.AddToCart(ctx, identity, p2.ID.Hex(), false)
	require.NoError(t, err)

	user, err := svc.RemoveFromCart(ctx, identity, p1.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, user.Cart.Quantity(p1.ID))
	assert.Equal(t, 1, user.Cart.Quantity(p2.ID))

	// Removing again is a no-op, not an error.
	user, err = svc.RemoveFromCart(ctx, identity, p1.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, user.Cart.Items, 1)
}

func TestClearCartIsIdempotent(t *testing.T) {
	svc, identity, p1, p2 := cartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, identity, p2.ID.Hex(), false)
	require.NoError(t, err)

	user, err := svc.ClearCart(ctx, identity)
	require.NoError(t, err)
	assert.Empty(t, user.Cart.Items)

	user, err = svc.ClearCart(ctx, identity)
	require.NoError(t, err)
	assert.Empty(t, user.Cart.Items)
}

func TestGetCartJoinsProducts(t *testing.T) {
	svc, identity, p1, p2 := cartFixture(t)
	ctx := context.Background()

	// empty → add(p1) → add(p1) → add(p2) → remove(p1)
	_, err := svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, identity, p1.ID.Hex(), false)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, identity, p2.ID.Hex(), false)
	require.NoError(t, err)
	_, err = svc.RemoveFromCart(ctx, identity, p1.ID.Hex())
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, identity)
	require.NoError(t, err)

	require.Len(t, cart.Products, 1)
	assert.Equal(t, 1, cart.Products[0].Quantity)
	assert.Equal(t, p2.ID, cart.Products[0].Product.ID)
	assert.Equal(t, p2.Name, cart.Products[0].Product.Name)
	assert.Equal(t, identity.ID, cart.UserID)
}

func TestGetCartUnresolvableUser(t *testing.T) {
	svc, _, _, _ := cartFixture(t)
	stranger := auth.Identity{ID: primitive.NewObjectID(), Email: "ghost@example.com"}

	_, err := svc.GetCart(context.Background(), stranger)
	assert.True(t, apperr.IsKind(err, apperr.AuthFailed))
}
