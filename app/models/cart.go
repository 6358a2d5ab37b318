package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is one line in a user's cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart holds a user's line items. At most one item per product, and an
// item's quantity is always >= 1 while it exists; hitting 0 removes it.
type Cart struct {
	Items []CartItem `bson:"items" json:"items"`
}

// Add increments the quantity for productID, or inserts a new item with
// quantity 1 when the product is not yet in the cart.
func (c *Cart) Add(productID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: 1})
}

// Decrease lowers the quantity for productID by one, removing the item
// when it reaches zero. Decreasing an absent product is a no-op.
func (c *Cart) Decrease(productID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
		} else {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return
	}
}

// Remove drops the item for productID regardless of quantity. Removing
// an absent product is a no-op.
func (c *Cart) Remove(productID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Quantity returns the quantity for productID, or 0 when absent.
func (c *Cart) Quantity(productID primitive.ObjectID) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}
