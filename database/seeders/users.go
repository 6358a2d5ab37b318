package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers inserts the demo accounts, skipping any that already exist.
func SeedUsers(ctx context.Context) error {
	repo := repositories.NewUserRepository()

	demo := []struct {
		name, surname, email, password string
	}{
		{"Jane", "Porter", "jane@example.com", "password123"},
		{"Sam", "Okafor", "sam@example.com", "password123"},
	}

	for _, d := range demo {
		_, err := repo.FindByEmail(ctx, d.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		hashed, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}

		user := models.User{
			Name:     d.name,
			Surname:  d.surname,
			Email:    d.email,
			Password: hashed,
		}
		if err := repo.Create(ctx, &user); err != nil {
			return err
		}
	}
	return nil
}
