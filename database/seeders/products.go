package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/database"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts the demo catalog when the collection is empty.
func SeedProducts(ctx context.Context) error {
	col := database.Collection(database.ColProducts)
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := repositories.NewProductRepository()
	catalog := []models.Product{
		{Name: "Mechanical keyboard", Price: 89.90, Description: "Hot-swappable switches, USB-C."},
		{Name: "Wireless mouse", Price: 29.90, Description: "Low-latency 2.4 GHz receiver."},
		{Name: "27\" monitor", Price: 249.00, Description: "1440p IPS panel, 144 Hz."},
		{Name: "Laptop stand", Price: 39.50, Description: "Aluminium, adjustable height."},
		{Name: "USB-C dock", Price: 119.00, Description: "Dual display output, 85 W charging."},
	}

	for i := range catalog {
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	return nil
}
