package controllers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
	"github.com/shashiranjanraj/bazaar/pkg/testkit"
)

// ─── in-memory stores ────────────────────────────────────────────────────────

type memUserStore struct {
	users map[string]*models.User
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	if u, ok := s.users[id.Hex()]; ok {
		return *u, nil
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *memUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := s.users[id.Hex()]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memUserStore) AddCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	s.users[userID.Hex()].Cart.Add(productID)
	return nil
}

func (s *memUserStore) DecreaseCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	s.users[userID.Hex()].Cart.Decrease(productID)
	return nil
}

func (s *memUserStore) PullCartItem(_ context.Context, userID, productID primitive.ObjectID) error {
	s.users[userID.Hex()].Cart.Remove(productID)
	return nil
}

func (s *memUserStore) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	s.users[userID.Hex()].Cart.Clear()
	return nil
}

type memProductStore struct {
	products []models.Product
}

func (s *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (s *memProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
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

func (s *memProductStore) Paginate(_ context.Context, req paginate.Request) ([]models.Product, paginate.Meta, error) {
	start := int(req.Skip())
	if start >= len(s.products) {
		return []models.Product{}, paginate.NewMeta(req, int64(len(s.products)), 0), nil
	}
	end := start + req.Limit
	if end > len(s.products) {
		end = len(s.products)
	}
	page := s.products[start:end]
	return page, paginate.NewMeta(req, int64(len(s.products)), len(page)), nil
}

type memPostStore struct {
	posts []models.Post
}

func (s *memPostStore) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	s.posts = append(s.posts, *post)
	return nil
}

func (s *memPostStore) Paginate(_ context.Context, req paginate.Request) ([]models.Post, paginate.Meta, error) {
	return s.posts, paginate.NewMeta(req, int64(len(s.posts)), len(s.posts)), nil
}

// ─── harness ─────────────────────────────────────────────────────────────────

type harness struct {
	mux      *chi.Mux
	user     *models.User
	products []models.Product
}

// withIdentity simulates the auth middleware for one fixed user.
func withIdentity(identity auth.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	user := &models.User{
		ID:      primitive.NewObjectID(),
		Name:    "Jane",
		Surname: "Porter",
		Email:   "jane@example.com",
	}
	products := []models.Product{
		{ID: primitive.NewObjectID(), Name: "keyboard", Price: 49.90},
		{ID: primitive.NewObjectID(), Name: "mouse", Price: 19.90},
	}

	users := &memUserStore{users: map[string]*models.User{user.ID.Hex(): user}}
	catalog := &memProductStore{products: products}
	posts := &memPostStore{}

	cartSvc := services.NewCartService(users, catalog)
	productSvc := services.NewProductService(catalog)
	postSvc := services.NewPostService(posts, users)

	productCtl := controllers.NewProductController(productSvc, cartSvc)
	postCtl := controllers.NewPostController(postSvc)

	identity := auth.Identity{ID: user.ID, Email: user.Email}

	mux := chi.NewRouter()
	mux.Use(paginate.Middleware())
	mux.Get("/api/v1/products", productCtl.List)
	mux.Get("/api/v1/products/{productId}", productCtl.Get)
	mux.Group(func(r chi.Router) {
		r.Use(withIdentity(identity))
		r.Post("/api/v1/cart", productCtl.AddToCart)
		r.Delete("/api/v1/cart", productCtl.RemoveFromCart)
		r.Get("/api/v1/cart", productCtl.GetCart)
		r.Delete("/api/v1/cart/clear", productCtl.ClearCart)
		r.Post("/api/v1/feed/posts", postCtl.Create)
	})
	mux.Get("/api/v1/feed/posts", postCtl.List)

	return &harness{mux: mux, user: user, products: products}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	return rr
}

// ─── catalog ─────────────────────────────────────────────────────────────────

func TestListProducts(t *testing.T) {
	h := newHarness(t)

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	env := testkit.AssertEnvelope(t, rr, http.StatusOK, true)
	assert.Equal(t, "Successful Found products", env.Message)

	var data struct {
		TotalDocs int64 `json:"totalDocs"`
		Count     int   `json:"count"`
		Products  []struct {
			Name    string `json:"name"`
			Request struct {
				URL string `json:"url"`
			} `json:"request"`
		} `json:"products"`
	}
	env.DataInto(t, &data)

	assert.Equal(t, int64(2), data.TotalDocs)
	assert.Equal(t, 2, data.Count)
	require.Len(t, data.Products, 2)
	assert.NotEmpty(t, data.Products[0].Request.URL)
}

func TestGetProductByID(t *testing.T) {
	h := newHarness(t)

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+h.products[0].ID.Hex(), nil))
	env := testkit.AssertEnvelope(t, rr, http.StatusOK, true)
	assert.Contains(t, env.Message, h.products[0].ID.Hex())
}

func TestGetProductMalformedIDIs422(t *testing.T) {
	h := newHarness(t)

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/nonsense", nil))
	testkit.AssertEnvelope(t, rr, http.StatusUnprocessableEntity, false)
}

func TestGetProductUnknownIDIs404(t *testing.T) {
	h := newHarness(t)

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+primitive.NewObjectID().Hex(), nil))
	testkit.AssertEnvelope(t, rr, http.StatusNotFound, false)
}

// ─── cart ────────────────────────────────────────────────────────────────────

func TestAddToCartReturns201WithUpdatedUser(t *testing.T) {
	h := newHarness(t)
	pid := h.products[0].ID.Hex()

	rr := h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": pid}))
	env := testkit.AssertEnvelope(t, rr, http.StatusCreated, true)
	assert.Contains(t, env.Message, pid)

	var data struct {
		User struct {
			Cart models.Cart `json:"cart"`
		} `json:"user"`
	}
	env.DataInto(t, &data)
	assert.Equal(t, 1, data.User.Cart.Quantity(h.products[0].ID))
}

func TestAddToCartDecreaseFlag(t *testing.T) {
	h := newHarness(t)
	pid := h.products[0].ID.Hex()

	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": pid}))
	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": pid}))
	rr := h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart?decrease=true", map[string]string{"productId": pid}))

	env := testkit.AssertEnvelope(t, rr, http.StatusCreated, true)
	var data struct {
		User struct {
			Cart models.Cart `json:"cart"`
		} `json:"user"`
	}
	env.DataInto(t, &data)
	assert.Equal(t, 1, data.User.Cart.Quantity(h.products[0].ID))
}

func TestAddToCartMissingProductIDIs422(t *testing.T) {
	h := newHarness(t)

	rr := h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{}))
	testkit.AssertEnvelope(t, rr, http.StatusUnprocessableEntity, false)
}

func TestCartScenarioEndToEnd(t *testing.T) {
	h := newHarness(t)
	p1, p2 := h.products[0].ID.Hex(), h.products[1].ID.Hex()

	// empty → add(p1) → add(p1) → add(p2) → remove(p1) → getCart
	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": p1}))
	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": p1}))
	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": p2}))
	h.do(testkit.JSONRequest(t, http.MethodDelete, "/api/v1/cart", map[string]string{"productId": p1}))

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	env := testkit.AssertEnvelope(t, rr, http.StatusOK, true)
	assert.Equal(t, "Successfully found cart", env.Message)

	var data struct {
		Products []struct {
			Quantity int `json:"quantity"`
			Product  struct {
				ID   primitive.ObjectID `json:"_id"`
				Name string             `json:"name"`
			} `json:"product"`
		} `json:"products"`
		UserID primitive.ObjectID `json:"userId"`
	}
	env.DataInto(t, &data)

	require.Len(t, data.Products, 1)
	assert.Equal(t, 1, data.Products[0].Quantity)
	assert.Equal(t, h.products[1].ID, data.Products[0].Product.ID)
	assert.Equal(t, h.user.ID, data.UserID)
}

func TestClearCart(t *testing.T) {
	h := newHarness(t)
	pid := h.products[0].ID.Hex()

	h.do(testkit.JSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]string{"productId": pid}))

	rr := h.do(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/clear", nil))
	env := testkit.AssertEnvelope(t, rr, http.StatusOK, true)
	assert.Equal(t, "Successfully cleared cart", env.Message)

	var data struct {
		User struct {
			Cart models.Cart `json:"cart"`
		} `json:"user"`
	}
	env.DataInto(t, &data)
	assert.Empty(t, data.User.Cart.Items)
}

func TestCartWithoutIdentityIs401(t *testing.T) {
	// Mount the handler without the identity middleware.
	mux := chi.NewRouter()
	users := &memUserStore{users: map[string]*models.User{}}
	catalog := &memProductStore{}
	ctl := controllers.NewProductController(
		services.NewProductService(catalog),
		services.NewCartService(users, catalog))
	mux.Get("/api/v1/cart", ctl.GetCart)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	env := testkit.AssertEnvelope(t, rr, http.StatusUnauthorized, false)
	assert.Equal(t, "Auth Failed (Invalid Credentials)", env.Message)
}

// ─── posts ───────────────────────────────────────────────────────────────────

func multipartPost(t *testing.T, target string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreatePostNormalizesCategory(t *testing.T) {
	h := newHarness(t)

	rr := h.do(multipartPost(t, "/api/v1/feed/posts", map[string]string{
		"title":    "Generics in practice",
		"content":  "A walkthrough of type parameters.",
		"category": "DevApp",
	}))
	env := testkit.AssertEnvelope(t, rr, http.StatusCreated, true)

	var data struct {
		Post struct {
			Category string `json:"category"`
			Creator  struct {
				Name    string `json:"name"`
				Surname string `json:"surname"`
			} `json:"creator"`
		} `json:"post"`
	}
	env.DataInto(t, &data)
	assert.Equal(t, "devapp", data.Post.Category)
	assert.Equal(t, "Jane", data.Post.Creator.Name)
	assert.Equal(t, "Porter", data.Post.Creator.Surname)
}

func TestCreatePostShortContentIs422(t *testing.T) {
	h := newHarness(t)

	rr := h.do(multipartPost(t, "/api/v1/feed/posts", map[string]string{
		"title":   "A proper title",
		"content": "hi",
	}))
	env := testkit.AssertEnvelope(t, rr, http.StatusUnprocessableEntity, false)

	var data struct {
		Errors map[string]string `json:"errors"`
	}
	env.DataInto(t, &data)
	assert.NotEmpty(t, data.Errors["content"])
}

func TestListPosts(t *testing.T) {
	h := newHarness(t)

	h.do(multipartPost(t, "/api/v1/feed/posts", map[string]string{
		"title":   "First post",
		"content": "Hello from the feed.",
	}))

	rr := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/feed/posts", nil))
	env := testkit.AssertEnvelope(t, rr, http.StatusOK, true)

	var data struct {
		TotalDocs int64 `json:"totalDocs"`
		Posts     []struct {
			Title   string `json:"title"`
			Creator struct {
				Name string `json:"name"`
			} `json:"creator"`
		} `json:"posts"`
	}
	env.DataInto(t, &data)
	assert.Equal(t, int64(1), data.TotalDocs)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, "First post", data.Posts[0].Title)
	assert.Equal(t, "Jane", data.Posts[0].Creator.Name)
}
