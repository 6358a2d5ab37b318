// Package paginate supplies the page descriptor consumed by list endpoints.
//
// The middleware parses ?page= and ?limit= into a Request stored in the
// context; repositories execute the skip/limit query and fill a Meta with the
// counters and cursors. Read services consume the descriptor read-only.
package paginate

import (
	"context"
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Request is the page window requested by the client.
type Request struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for this window.
func (r Request) Skip() int64 {
	return int64((r.Page - 1) * r.Limit)
}

// Cursor points at an adjacent page.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Meta carries the pagination counters for one result page.
type Meta struct {
	TotalDocs   int64
	TotalPages  int
	LastPage    int
	CurrentPage int
	Count       int
	Next        *Cursor
	Previous    *Cursor
}

// NewMeta derives the counters and cursors from a request, the total number
// of matching documents, and the number of documents actually returned.
func NewMeta(req Request, totalDocs int64, count int) Meta {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int((totalDocs + int64(req.Limit) - 1) / int64(req.Limit))
	}

	m := Meta{
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		LastPage:    totalPages,
		CurrentPage: req.Page,
		Count:       count,
	}

	if req.Page > 1 && totalDocs > 0 {
		m.Previous = &Cursor{Page: req.Page - 1, Limit: req.Limit}
	}
	if req.Page < totalPages {
		m.Next = &Cursor{Page: req.Page + 1, Limit: req.Limit}
	}

	return m
}

// ctxKey is the unexported context key for the Request.
type ctxKey struct{}

// WithRequest stores a page request in ctx.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, ctxKey{}, req)
}

// FromCtx extracts the page request from ctx, falling back to page 1 with
// the default limit.
func FromCtx(ctx context.Context) Request {
	if req, ok := ctx.Value(ctxKey{}).(Request); ok {
		return req
	}
	return Request{Page: 1, Limit: DefaultLimit}
}

// Middleware parses the page/limit query parameters into the context.
// Out-of-range values are clamped rather than rejected.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := Request{Page: 1, Limit: DefaultLimit}

			if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
				req.Page = v
			}
			if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
				if v > MaxLimit {
					v = MaxLimit
				}
				req.Limit = v
			}

			next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), req)))
		})
	}
}
