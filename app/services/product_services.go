package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/resources"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// ProductService exposes the catalog read operations.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns one page of the catalog as a list payload.
func (s *ProductService) List(ctx context.Context, req paginate.Request) (resources.ProductListPayload, error) {
	products, meta, err := s.products.Paginate(ctx, req)
	if err != nil {
		return resources.ProductListPayload{}, apperr.Wrap(apperr.Internal, "list products", err)
	}
	return resources.NewProductListPayload(products, meta), nil
}

// Get returns one product by its raw id. A malformed id fails before any
// store access; an unknown id is a NotFound.
func (s *ProductService) Get(ctx context.Context, rawID string) (resources.ProductPayload, error) {
	id, err := parseProductID(rawID)
	if err != nil {
		return resources.ProductPayload{}, err
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return resources.ProductPayload{}, apperr.E(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return resources.ProductPayload{}, apperr.Wrap(apperr.Internal, "find product", err)
	}

	return resources.NewProductPayload(product), nil
}
