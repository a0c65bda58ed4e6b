// Package handlers provides the HTTP handlers and middleware for the
// Solace API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/solacehq/solace/internal/storage"
)

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent; nothing to do but log.
		fmt.Printf("failed to encode JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}
	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}
	respondJSON(w, statusCode, errResp)
}

// respondStorageError maps storage sentinel errors onto HTTP statuses.
// Unknown errors render as a generic could-not-save/load message so
// backend details never leak to the client.
func respondStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, storage.ErrNoIdentity):
		respondError(w, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, storage.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid input", nil)
	default:
		respondError(w, http.StatusInternalServerError, "could not save or load data", nil)
	}
}

// parseInt parses s, falling back to def for empty or invalid input.
func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// listOptions reads pagination query parameters.
func listOptions(r *http.Request) storage.ListOptions {
	return storage.ListOptions{
		Limit:  parseInt(r.URL.Query().Get("limit"), 0),
		Offset: parseInt(r.URL.Query().Get("offset"), 0),
	}
}
