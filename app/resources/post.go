package resources

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/collection"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// CreatorView is the denormalized author projection on a post.
type CreatorView struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Surname      string             `json:"surname"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// NewCreatorView projects the author's public profile fields.
func NewCreatorView(u models.User) CreatorView {
	return CreatorView{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		ProfileImage: u.ProfileImage,
	}
}

// PostView is the feed projection: the full author document is reduced
// to its creator projection.
type PostView struct {
	ID        primitive.ObjectID `json:"_id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Image     string             `json:"postImage,omitempty"`
	Category  string             `json:"category"`
	Creator   CreatorView        `json:"creator"`
	Likes     []models.Like      `json:"likes"`
	Comments  []models.Comment   `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Request   RequestLink        `json:"request"`
}

// NewPostView projects one post with its resolved creator.
func NewPostView(p models.Post, creator CreatorView) PostView {
	likes := p.Likes
	if likes == nil {
		likes = []models.Like{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		Category:  p.Category,
		Creator:   creator,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Request:   postLink(p.ID),
	}
}

// PostListPayload is the data object for the post list endpoint.
type PostListPayload struct {
	listMeta
	Posts []PostView `json:"posts"`
}

// NewPostListPayload combines one result page with its counters, resolving
// each post's creator from the authors map (keyed by author hex ID).
func NewPostListPayload(posts []models.Post, authors map[string]models.User, meta paginate.Meta) PostListPayload {
	return PostListPayload{
		listMeta: newListMeta(meta),
		Posts: collection.Map(posts, func(p models.Post) PostView {
			return NewPostView(p, NewCreatorView(authors[p.Author.Hex()]))
		}),
	}
}

// PostPayload is the data object for a freshly created post.
type PostPayload struct {
	Post PostView `json:"post"`
}

func NewPostPayload(p models.Post, creator CreatorView) PostPayload {
	return PostPayload{Post: NewPostView(p, creator)}
}
