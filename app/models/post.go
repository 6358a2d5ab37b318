package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed set a post may belong to.
var Categories = []string{
	"blockchain", "coding", "devapp", "nextjs", "nodejs",
	"reactjs", "sports", "typescript", "social",
}

// DefaultCategory is used when the client omits the category.
const DefaultCategory = "social"

// NormalizeCategory lowercases the value and falls back to the default
// when it is empty. Runs before validation so "DevApp" passes the enum.
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return DefaultCategory
	}
	return category
}

// Like marks a user's like on a post.
type Like struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is one reader comment on a post.
type Comment struct {
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a feed document attributed to its author.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Image     string             `bson:"postImage,omitempty" json:"postImage,omitempty"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Category  string             `bson:"category" json:"category"`
	Likes     []Like             `bson:"likes" json:"likes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreatePostInput is the write payload for a new post. Category must be
// normalized before validation.
type CreatePostInput struct {
	Title    string `json:"title"    validate:"required,min=3,max=100"`
	Content  string `json:"content"  validate:"required,min=5"`
	Category string `json:"category" validate:"nullable,in=blockchain,coding,devapp,nextjs,nodejs,reactjs,sports,typescript,social"`
}
