package resources

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// ProductView is the catalog projection. The owning-user reference is
// deliberately absent.
type ProductView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Description string             `json:"description,omitempty"`
	Image       string             `json:"productImage,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Request     RequestLink        `json:"request"`
}

// NewProductView projects one product for a list payload, linking back to
// the single-product endpoint.
func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Request:     productLink(p.ID),
	}
}

// ProductListPayload is the data object for the product list endpoint.
type ProductListPayload struct {
	listMeta
	Products []ProductView `json:"products"`
}

// NewProductListPayload combines one result page with its counters.
func NewProductListPayload(products []models.Product, meta paginate.Meta) ProductListPayload {
	return ProductListPayload{
		listMeta: newListMeta(meta),
		Products: collection.Map(products, NewProductView),
	}
}

// ProductPayload is the data object for the single-product endpoint. Its
// request link points back at the collection.
type ProductPayload struct {
	Product ProductView `json:"product"`
}

// NewProductPayload projects one product for the get-by-id endpoint.
func NewProductPayload(p models.Product) ProductPayload {
	view := NewProductView(p)
	view.Request = productsLink()
	return ProductPayload{Product: view}
}
