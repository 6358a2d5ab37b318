package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestOkEnvelopeShape(t *testing.T) {
	rr := httptest.NewRecorder()
	response.Ok(rr, "done", map[string]string{"name": "widget"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["error"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, float64(http.StatusOK), body["status"])
	assert.Equal(t, map[string]interface{}{"name": "widget"}, body["data"])
}

func TestCreated(t *testing.T) {
	rr := httptest.NewRecorder()
	response.Created(rr, "made", nil)

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(http.StatusCreated), body["status"])
	assert.Nil(t, body["data"])
}

func TestFail(t *testing.T) {
	rr := httptest.NewRecorder()
	response.Fail(rr, http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Product not found", body["message"])
	assert.Nil(t, body["data"])
}

func TestFromErrorMapsTaxonomy(t *testing.T) {
	rr := httptest.NewRecorder()
	response.FromError(rr, apperr.E(apperr.NotFound, "Product not found"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Product not found", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func TestFromErrorUnknownIsInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	response.FromError(rr, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestValidationError(t *testing.T) {
	rr := httptest.NewRecorder()
	response.ValidationError(rr, map[string]string{"title": "title must be at least 3 characters"})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["error"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	errs, ok := data["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "title must be at least 3 characters", errs["title"])
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	response.Unauthorized(rr, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Auth Failed (Invalid Credentials)", body["message"])

	rr = httptest.NewRecorder()
	response.Unauthorized(rr, "Token expired")
	assert.Equal(t, "Token expired", decode(t, rr)["message"])
}
