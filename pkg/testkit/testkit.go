// Package testkit holds small helpers shared by HTTP handler tests.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the uniform response body every endpoint writes.
type Envelope struct {
	Success bool            `json:"success"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// DecodeEnvelope parses the recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env),
		"response is not a valid envelope\nbody: %s", rr.Body.String())
	return env
}

// AssertEnvelope checks the HTTP status plus the envelope's success/error
// flags and embedded status, and returns the envelope for data assertions.
func AssertEnvelope(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantSuccess bool) Envelope {
	t.Helper()
	assert.Equal(t, wantStatus, rr.Code, "HTTP status code mismatch")

	env := DecodeEnvelope(t, rr)
	assert.Equal(t, wantSuccess, env.Success, "envelope success flag")
	assert.Equal(t, !wantSuccess, env.Error, "envelope error flag")
	assert.Equal(t, wantStatus, env.Status, "envelope status field")
	return env
}

// DataInto unmarshals the envelope's data field into dest.
func (e Envelope) DataInto(t *testing.T, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dest),
		"envelope data does not match target shape\ndata: %s", string(e.Data))
}

// JSONRequest builds a request with a JSON-encoded body and content type.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}
