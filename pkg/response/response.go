// Package response writes the uniform JSON envelope every endpoint answers
// with:
//
//	{"success": true,  "data": {...}, "error": null}
//	{"success": false, "data": null,  "error": {"code": 2, "error_message": "..."}}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/vitrine/backoffice/pkg/orm"
)

// CodeFailure is the single error code used for every failure.
const CodeFailure = 2

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   *Error `json:"error"`
}

// Error is the failure half of the envelope.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"error_message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Write encodes body with status.
func Write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 success envelope with data.
func OK(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Fail sends a failure envelope with code 2.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Error: &Error{Code: CodeFailure, Message: message}})
}

// ValidationFailed sends a 400 failure envelope carrying per-field messages.
func ValidationFailed(w http.ResponseWriter, message string, fields map[string]string) {
	Write(w, http.StatusBadRequest, Envelope{Error: &Error{
		Code:    CodeFailure,
		Message: message,
		Fields:  fields,
	}})
}

// Page is the data shape of paginated responses.
type Page struct {
	Items      any            `json:"items"`
	Pagination orm.Pagination `json:"pagination"`
}

// Paginated sends a 200 success envelope with items and pagination metadata.
func Paginated(w http.ResponseWriter, items any, pagination orm.Pagination) {
	OK(w, Page{Items: items, Pagination: pagination})
}
