// Package resources shapes stored documents into response projections.
// Every exposed field is named explicitly; internal fields such as the
// product's owning-user reference never leave this package.
package resources

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/paginate"
)

// RequestLink is the self-descriptive link attached to each list item.
type RequestLink struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func apiBase() string {
	return fmt.Sprintf("%s/api/%s", config.APIURL(), config.APIVersion())
}

func productLink(id primitive.ObjectID) RequestLink {
	return RequestLink{
		Type:        "Get",
		Description: "Get one product with the id",
		URL:         fmt.Sprintf("%s/products/%s", apiBase(), id.Hex()),
	}
}

func productsLink() RequestLink {
	return RequestLink{
		Type:        "Get",
		Description: "Get all the product",
		URL:         fmt.Sprintf("%s/products", apiBase()),
	}
}

func postLink(id primitive.ObjectID) RequestLink {
	return RequestLink{
		Type:        "Get",
		Description: "Get one post with the id",
		URL:         fmt.Sprintf("%s/feed/posts/%s", apiBase(), id.Hex()),
	}
}

// listMeta carries the pagination counters every list payload embeds.
type listMeta struct {
	TotalDocs   int64            `json:"totalDocs"`
	TotalPages  int              `json:"totalPages"`
	LastPage    int              `json:"lastPage"`
	Count       int              `json:"count"`
	CurrentPage int              `json:"currentPage"`
	NextPage    *paginate.Cursor `json:"nextPage,omitempty"`
	PrevPage    *paginate.Cursor `json:"prevPage,omitempty"`
}

func newListMeta(meta paginate.Meta) listMeta {
	return listMeta{
		TotalDocs:   meta.TotalDocs,
		TotalPages:  meta.TotalPages,
		LastPage:    meta.LastPage,
		Count:       meta.Count,
		CurrentPage: meta.CurrentPage,
		NextPage:    meta.Next,
		PrevPage:    meta.Previous,
	}
}
