package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"microblog/internal/model"
	"microblog/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{Message: message, Data: data})
}

// writeError maps domain errors onto the wire contract. Anything
// unclassified is logged and reported as a generic 500 so internals never
// leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error occurred"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		message = "User already exists"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrBlogNotFound):
		status = http.StatusNotFound
		message = "Blog not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Invalid input"
	default:
		slog.Error("unhandled error", "error", err.Error())
	}

	writeJSON(w, status, message, nil)
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Message: "Request Validation Failed",
		Error:   err.Error(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, apierror.New("Invalid JSON body", http.StatusBadRequest))
		return false
	}
	return true
}
