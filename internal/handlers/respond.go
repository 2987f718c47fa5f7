package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jwebster45206/pokedex-engine/pkg/catalog"
	"github.com/jwebster45206/pokedex-engine/pkg/input"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// maxBodyBytes caps request bodies; the largest is a species record.
const maxBodyBytes = 64 << 10

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, input.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicate):
		return http.StatusConflict
	case rules.IsViolation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError reports err with the status its class maps to. Internal errors are logged
// and their details withheld.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		msg = "Internal server error"
	} else {
		logger.Debug("Request refused", "status", status, "error", err, "path", r.URL.Path)
	}
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// decodeBody reads a JSON request body into v. Malformed bodies are input errors.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: request body: %v", input.ErrInvalid, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", input.ErrInvalid, name, r.PathValue(name))
	}
	return n, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID, got %q", input.ErrInvalid, name, r.PathValue(name))
	}
	return id, nil
}

func queryLimit(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	return input.Int("limit", raw, 1)
}
