package services_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// fakeUserStore keeps users in memory and applies cart mutations through
// the model's own transition methods.
type fakeUserStore struct {
	users map[string]*models.User // keyed by ID hex
	err   error                   // when set, every method fails with it
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID.Hex()] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	for _, u := range s.users {
		if equalFold(u.Email, email) {
			return *u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	if u, ok := s.users[id.Hex()]; ok {
		return *u, nil
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []models.User{}
	for _, id := range ids {
		if u, ok := s.users[id.Hex()]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) AddCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	if u, ok := s.users[userID.Hex()]; ok {
		u.Cart.Add(productID)
	}
	return nil
}

func (s *fakeUserStore) DecreaseCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	if u, ok := s.users[userID.Hex()]; ok {
		u.Cart.Decrease(productID)
	}
	return nil
}

func (s *fakeUserStore) PullCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	if u, ok := s.users[userID.Hex()]; ok {
		u.Cart.Remove(productID)
	}
	return nil
}

func (s *fakeUserStore) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	if u, ok := s.users[userID.Hex()]; ok {
		u.Cart.Clear()
	}
	return nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// fakeProductStore serves a fixed catalog.
type fakeProductStore struct {
	products []models.Product
	err      error
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
	}
	return &fakeProductStore{products: products}
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	if s.err != nil {
		return models.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (s *fakeProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Product{}
	for _, id := range ids {
		for _, p := range s.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *fakeProductStore) Paginate(_ context.Context, req paginate.Request) ([]models.Product, paginate.Meta, error) {
	if s.err != nil {
		return nil, paginate.Meta{}, s.err
	}
	page := slicePage(s.products, req)
	return page, paginate.NewMeta(req, int64(len(s.products)), len(page)), nil
}

// fakePostStore appends posts in memory.
type fakePostStore struct {
	posts []models.Post
	err   error
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	if s.err != nil {
		return s.err
	}
	post.ID = primitive.NewObjectID()
	s.posts = append(s.posts, *post)
	return nil
}

func (s *fakePostStore) Paginate(_ context.Context, req paginate.Request) ([]models.Post, paginate.Meta, error) {
	if s.err != nil {
		return nil, paginate.Meta{}, s.err
	}
	page := slicePage(s.posts, req)
	return page, paginate.NewMeta(req, int64(len(s.posts)), len(page)), nil
}

func slicePage[T any](all []T, req paginate.Request) []T {
	start := int(req.Skip())
	if start >= len(all) {
		return []T{}
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
