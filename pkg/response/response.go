// Package response writes the uniform JSON envelope used on every boundary:
//
//	{"success": true, "error": false, "message": "...", "status": 200, "data": {...}}
//
// Failures use the same shape with success=false, error=true and data=null.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/bazaar/pkg/apperr"
)

// Envelope is the uniform response wrapper.
type Envelope struct {
	Success bool        `json:"success"`
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	json.NewEncoder(w).Encode(env) //nolint:errcheck
}

// JSON sends a success envelope with an arbitrary status code.
func JSON(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, Envelope{Success: true, Message: message, Status: status, Data: data})
}

// Ok sends a 200 success envelope.
func Ok(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, message, data)
}

// Created sends a 201 success envelope.
func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, message, data)
}

// Fail sends a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, Envelope{Error: true, Message: message, Status: status})
}

// FromError sends a failure envelope derived from the error taxonomy.
func FromError(w http.ResponseWriter, err error) {
	Fail(w, apperr.Status(err), apperr.Message(err))
}

// ValidationError sends a 422 failure envelope carrying field-level errors.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, Envelope{
		Error:   true,
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
		Data:    map[string]interface{}{"errors": errs},
	})
}

// Unauthorized sends a 401 failure envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Auth Failed (Invalid Credentials)"
	}
	Fail(w, http.StatusUnauthorized, message)
}
