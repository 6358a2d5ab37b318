package routes

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
	"github.com/shashiranjanraj/bazaar/pkg/router"
	"github.com/shashiranjanraj/bazaar/pkg/ws"
)

// RegisterAPI mounts every versioned API route.
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()
	posts := repositories.NewPostRepository()

	cartSvc := services.NewCartService(users, products)
	productSvc := services.NewProductService(products)
	postSvc := services.NewPostService(posts, users)

	productCtl := controllers.NewProductController(productSvc, cartSvc)
	postCtl := controllers.NewPostController(postSvc)

	api := r.Group("/api/" + config.APIVersion())

	api.Get("/products", "products.list", productCtl.List, paginate.Middleware())
	api.Get("/products/{productId}", "products.get", productCtl.Get)

	cart := api.Group("/cart", middleware.Auth)
	cart.Post("", "cart.add", productCtl.AddToCart)
	cart.Delete("", "cart.remove", productCtl.RemoveFromCart)
	cart.Get("", "cart.get", productCtl.GetCart)
	cart.Delete("/clear", "cart.clear", productCtl.ClearCart)

	feed := api.Group("/feed")
	feed.Get("/posts", "posts.list", postCtl.List, paginate.Middleware())
	feed.Post("/posts", "posts.create", postCtl.Create,
		middleware.Auth, middleware.Upload("postImage", "posts"))
	feed.Get("/live", "posts.live", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	})
}
