package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/resources"
	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
	"github.com/shashiranjanraj/bazaar/pkg/event"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

// EventPostCreated is fired with the created post's projection after a
// successful write; the live feed hub listens for it.
const EventPostCreated = "post.created"

// PostService exposes the feed read and write operations.
type PostService struct {
	posts PostStore
	users UserStore
}

func NewPostService(posts PostStore, users UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

// List returns one page of the feed with each post's author resolved to
// its creator projection.
func (s *PostService) List(ctx context.Context, req paginate.Request) (resources.PostListPayload, error) {
	posts, meta, err := s.posts.Paginate(ctx, req)
	if err != nil {
		return resources.PostListPayload{}, apperr.Wrap(apperr.Internal, "list posts", err)
	}

	authorIDs := collection.Unique(collection.Map(posts, func(p models.Post) primitive.ObjectID {
		return p.Author
	}))
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return resources.PostListPayload{}, apperr.Wrap(apperr.Internal, "resolve authors", err)
	}

	byID := collection.KeyBy(authors, func(u models.User) string { return u.ID.Hex() })
	return resources.NewPostListPayload(posts, byID, meta), nil
}

// Create validates and persists a new post attributed to the identity.
// The category is lowercased and defaulted before validation, so
// "DevApp" persists as "devapp" and an omitted category becomes "social".
// A non-empty errs map means validation failed; the store was not touched.
func (s *PostService) Create(ctx context.Context, identity auth.Identity, input models.CreatePostInput, imagePath string) (resources.PostPayload, map[string]string, error) {
	if identity.ID.IsZero() {
		return resources.PostPayload{}, nil, apperr.E(apperr.AuthFailed, authFailedMessage)
	}

	input.Category = models.NormalizeCategory(input.Category)
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return resources.PostPayload{}, errs, nil
	}

	author, err := s.users.FindByID(ctx, identity.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return resources.PostPayload{}, nil, apperr.E(apperr.AuthFailed, authFailedMessage)
	}
	if err != nil {
		return resources.PostPayload{}, nil, apperr.Wrap(apperr.Internal, "resolve author", err)
	}

	post := models.Post{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Image:    imagePath,
		Author:   author.ID,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return resources.PostPayload{}, nil, apperr.Wrap(apperr.Internal, "create post", err)
	}

	payload := resources.NewPostPayload(post, resources.NewCreatorView(author))

	event.FireAsync(EventPostCreated, payload.Post)
	if err := queue.Dispatch(&jobs.ActivityJob{
		UserID:  author.ID.Hex(),
		Action:  "post.create",
		Subject: post.ID.Hex(),
	}); err != nil {
		logger.Warn("posts: dispatch activity job", "error", err)
	}

	return payload, nil, nil
}
