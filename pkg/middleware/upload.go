package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"path"
	"strings"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/response"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// maxUploadBytes caps a multipart upload at 8 MB.
const maxUploadBytes = 8 << 20

// uploadKey is the unexported context key for the stored file path.
type uploadKey struct{}

// UploadedFile returns the storage path of the file saved by Upload,
// or "" when the request carried no file.
func UploadedFile(ctx context.Context) string {
	p, _ := ctx.Value(uploadKey{}).(string)
	return p
}

// Upload stores the multipart file found under field on the default storage
// disk, below dir, and passes the stored path to the handler via context.
// A request without the field passes through unchanged; the handler decides
// whether the file was required.
func Upload(field, dir string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				response.Fail(w, http.StatusBadRequest, "invalid multipart body")
				return
			}

			file, header, err := r.FormFile(field)
			if err != nil {
				// Field absent: not an error at this layer.
				next.ServeHTTP(w, r)
				return
			}
			defer file.Close()

			stored := path.Join(dir, randomName()+strings.ToLower(path.Ext(header.Filename)))
			if err := storage.Put(r.Context(), stored, file); err != nil {
				logger.WithCtx(r.Context()).Error("upload: store file", "error", err, "field", field)
				response.Fail(w, http.StatusInternalServerError, "could not store uploaded file")
				return
			}

			ctx := context.WithValue(r.Context(), uploadKey{}, stored)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// randomName generates a 16-byte hex file name.
func randomName() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
