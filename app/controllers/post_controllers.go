package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/bind"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// PostController serves the feed endpoints.
type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// List handles GET /feed/posts.
func (c *PostController) List(w http.ResponseWriter, r *http.Request) {
	payload, err := c.posts.List(r.Context(), paginate.FromCtx(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Ok(w, "Successful Found posts", payload)
}

// Create handles POST /feed/posts (multipart). The Upload middleware has
// already stored the image and put its path in the context; the service
// normalizes the category and validates before persisting.
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var input models.CreatePostInput
	if err := bind.Form(r, &input); err != nil {
		response.Fail(w, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	payload, errs, err := c.posts.Create(r.Context(), identity, input, middleware.UploadedFile(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	response.Created(w, "Successfully created post", payload)
}
