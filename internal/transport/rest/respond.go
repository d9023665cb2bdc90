package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// retryAfterSeconds is sent with every 503.
const retryAfterSeconds = 5

type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors to HTTP responses. 5xx bodies never
// carry the underlying error.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: verr.Errors})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict, please retry")
	case errors.Is(err, domain.ErrUnavailable):
		log.WarnContext(r.Context(), "downstream unavailable", slog.String("error", err.Error()))
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decoder reads JSON bodies under a size limit. Unknown fields are ignored.
type decoder struct {
	maxBytes int64
}

func newDecoder(maxBytes int64) decoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return decoder{maxBytes: maxBytes}
}

// decode fills dst from the request body. The returned error is a
// *domain.ValidationError suitable for handleError.
func (d decoder) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, d.maxBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
		}
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// pathID parses the {id} wildcard. A malformed id cannot name an existing
// resource, so it is reported as not found.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id: %w", domain.ErrNotFound)
	}
	return id, nil
}

// parseNumber accepts a JSON number or a string holding one. Older
// clients send form values as strings.
func parseNumber(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("must be a number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("must be a number")
	}
	return &f, nil
}

// numberFields reads the named numeric fields of a JSON object. Absent
// fields stay nil; malformed ones are reported per field.
func numberFields(body map[string]json.RawMessage, names []string) (map[string]*float64, []domain.FieldError) {
	out := make(map[string]*float64, len(names))
	var errs []domain.FieldError
	for _, name := range names {
		raw, ok := body[name]
		if !ok {
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: name, Message: err.Error()})
			continue
		}
		out[name] = v
	}
	return out, errs
}
