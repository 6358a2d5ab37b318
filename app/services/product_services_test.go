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
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

func TestListProductsBuildsPayload(t *testing.T) {
	store := newFakeProductStore(
		models.Product{Name: "keyboard", Price: 49.90},
		models.Product{Name: "mouse", Price: 19.90},
		models.Product{Name: "monitor", Price: 199.00},
	)
	svc := services.NewProductService(store)

	payload, err := svc.List(context.Background(), paginate.Request{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), payload.TotalDocs)
	assert.Equal(t, 2, payload.TotalPages)
	assert.Equal(t, 2, payload.LastPage)
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, 2, payload.CurrentPage)
	assert.Nil(t, payload.NextPage)
	require.NotNil(t, payload.PrevPage)
	assert.Equal(t, 1, payload.PrevPage.Page)

	require.Len(t, payload.Products, 1)
	assert.Equal(t, "monitor", payload.Products[0].Name)
	assert.Contains(t, payload.Products[0].Request.URL, payload.Products[0].ID.Hex())
}

func TestGetProductMalformedID(t *testing.T) {
	svc := services.NewProductService(newFakeProductStore())

	_, err := svc.Get(context.Background(), "zzz")
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	assert.Equal(t, 422, apperr.Status(err))
}

func TestGetProductNotFound(t *testing.T) {
	svc := services.NewProductService(newFakeProductStore())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestGetProductStripsOwnerReference(t *testing.T) {
	store := newFakeProductStore(models.Product{
		Name:   "keyboard",
		Price:  49.90,
		UserID: primitive.NewObjectID(),
	})
	svc := services.NewProductService(store)

	payload, err := svc.Get(context.Background(), store.products[0].ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, "keyboard", payload.Product.Name)
	// The single-product link points back at the collection.
	assert.Contains(t, payload.Product.Request.URL, "/products")
}
