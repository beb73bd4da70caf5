package respond

import (
	"encoding/json"
	"net/http"
)

// The three stable failure messages. Every failure at the boundary translates
// to exactly one of them.
const (
	MsgNotFound      = "resource not found"
	MsgUnprocessable = "unprocessable"
	MsgBadRequest    = "bad request"
)

// ErrorResponse is the standardized failure payload: the error field carries
// the HTTP status code, the message one of the stable strings.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes the standardized failure payload.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Success: false, Error: status, Message: message})
}

// NotFound writes a 404 failure.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, MsgNotFound)
}

// Unprocessable writes a 422 failure.
func Unprocessable(w http.ResponseWriter) {
	Error(w, http.StatusUnprocessableEntity, MsgUnprocessable)
}

// BadRequest writes a 400 failure.
func BadRequest(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, MsgBadRequest)
}
