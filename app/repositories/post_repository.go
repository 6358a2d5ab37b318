package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// PostRepository handles feed post reads and writes.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository() *PostRepository {
	return &PostRepository{col: database.Collection(database.ColPosts)}
}

// Create persists a new post.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	defer metrics.ObserveMongoOp("posts.create", time.Now())

	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// Paginate returns one page of posts, newest first.
func (r *PostRepository) Paginate(ctx context.Context, req paginate.Request) ([]models.Post, paginate.Meta, error) {
	defer metrics.ObserveMongoOp("posts.paginate", time.Now())

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(req.Skip()).
		SetLimit(int64(req.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, paginate.Meta{}, fmt.Errorf("decode posts: %w", err)
	}

	return posts, paginate.NewMeta(req, total, len(posts)), nil
}
