package resources

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
)

// CartProductView is the product shape embedded in a cart line: the full
// catalog fields without the request link.
type CartProductView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Description string             `json:"description,omitempty"`
	Image       string             `json:"productImage,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// CartLineView is one {quantity, product} pair in the cart payload.
type CartLineView struct {
	Quantity int             `json:"quantity"`
	Product  CartProductView `json:"product"`
}

// CartPayload is the data object for the get-cart endpoint.
type CartPayload struct {
	Products []CartLineView     `json:"products"`
	UserID   primitive.ObjectID `json:"userId"`
}

// NewCartPayload joins cart items with their referenced products. Items
// whose product no longer exists in the catalog are dropped.
func NewCartPayload(userID primitive.ObjectID, items []models.CartItem, products map[string]models.Product) CartPayload {
	lines := []CartLineView{}
	for _, item := range items {
		p, ok := products[item.ProductID.Hex()]
		if !ok {
			continue
		}
		lines = append(lines, CartLineView{
			Quantity: item.Quantity,
			Product: CartProductView{
				ID:          p.ID,
				Name:        p.Name,
				Price:       p.Price,
				Description: p.Description,
				Image:       p.Image,
				CreatedAt:   p.CreatedAt,
				UpdatedAt:   p.UpdatedAt,
			},
		})
	}
	return CartPayload{Products: lines, UserID: userID}
}

// UserPayload is the data object returned by cart mutations: the updated
// user with their cart, never the password hash.
type UserPayload struct {
	User UserView `json:"user"`
}

// UserView exposes the account's public fields plus the cart.
type UserView struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Surname      string             `json:"surname"`
	Email        string             `json:"email"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Cart         models.Cart        `json:"cart"`
}

// NewUserPayload projects the updated user after a cart mutation.
func NewUserPayload(u models.User) UserPayload {
	cart := u.Cart
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return UserPayload{User: UserView{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Cart:         cart,
	}}
}
