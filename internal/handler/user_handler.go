package handler

import (
	"net/http"

	"microblog/internal/middleware"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/validation"
	"microblog/pkg/apierror"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new identity and returns it together with a freshly
// issued token. The password never appears in the response.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := validation.Validate(payload); err != nil {
		writeValidationError(w, err)
		return
	}

	profile, err := h.users.Register(r.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "Registration successful", profile)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := validation.Validate(payload); err != nil {
		writeValidationError(w, err)
		return
	}

	profile, ok, err := h.users.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apierror.New("Invalid email or password", http.StatusUnauthorized))
		return
	}

	writeJSON(w, http.StatusOK, "Login Successful", profile)
}

// Me is the whoami endpoint the remote guard of other services calls.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("Not authorized, no token", http.StatusUnauthorized))
		return
	}

	profile, err := h.users.GetProfile(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Profile fetched successfully", profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("Not authorized, no token", http.StatusUnauthorized))
		return
	}

	var payload model.UpdateProfileRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := validation.Validate(payload); err != nil {
		writeValidationError(w, err)
		return
	}
	if payload.Empty() {
		writeError(w, apierror.New("At least one field is required to update", http.StatusBadRequest))
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), identity.ID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "User updated successfully", updated)
}
