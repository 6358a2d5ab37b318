package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bazaar/app/resources"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
	"github.com/shashiranjanraj/bazaar/pkg/response"
	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

// ProductController serves the catalog and cart endpoints.
type ProductController struct {
	products *services.ProductService
	cart     *services.CartService
}

func NewProductController(products *services.ProductService, cart *services.CartService) *ProductController {
	return &ProductController{products: products, cart: cart}
}

// List handles GET /products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	payload, err := c.products.List(r.Context(), paginate.FromCtx(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w, "Successful Found products", payload)
}

// Get handles GET /products/{productId}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	payload, err := c.products.Get(r.Context(), productID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w, fmt.Sprintf("Successfully found product by ID: %s", productID), payload)
}

// cartItemInput is the body for cart add/remove.
type cartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddToCart handles POST /cart. The optional ?decrease=true query flag
// turns the add into a decrease.
func (c *ProductController) AddToCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var input cartItemInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Fail(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	decrease := r.URL.Query().Get("decrease") == "true"

	user, err := c.cart.AddToCart(r.Context(), identity, input.ProductID, decrease)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w,
		fmt.Sprintf("Successfully added product to cart: %s", input.ProductID),
		resources.NewUserPayload(user))
}

// RemoveFromCart handles DELETE /cart.
func (c *ProductController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var input cartItemInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Fail(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.cart.RemoveFromCart(r.Context(), identity, input.ProductID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w,
		fmt.Sprintf("Successfully removed item: %s from Cart", input.ProductID),
		resources.NewUserPayload(user))
}

// GetCart handles GET /cart.
func (c *ProductController) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	payload, err := c.cart.GetCart(r.Context(), identity)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w, "Successfully found cart", payload)
}

// ClearCart handles DELETE /cart/clear.
func (c *ProductController) ClearCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	user, err := c.cart.ClearCart(r.Context(), identity)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w, "Successfully cleared cart", resources.NewUserPayload(user))
}
