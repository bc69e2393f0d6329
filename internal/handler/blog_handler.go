package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"microblog/internal/middleware"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/validation"
	"microblog/pkg/apierror"
)

type BlogHandler struct {
	blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.BlogFilter{
		AuthorID: r.URL.Query().Get("authorId"),
		Tag:      r.URL.Query().Get("tag"),
	}

	blogs, err := h.blogs.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Blogs fetched successfully", blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	blog, err := h.blogs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Blog fetched successfully", blog)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("Unauthorized", http.StatusUnauthorized))
		return
	}

	var payload model.CreateBlogRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := validation.Validate(payload); err != nil {
		writeValidationError(w, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), payload, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "Blog created successfully", blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	var payload model.UpdateBlogRequest
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

	blog, err := h.blogs.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Blog updated successfully", blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Blog deleted successfully", nil)
}

func blogID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		writeValidationError(w, errors.New("id must be a valid UUID"))
		return "", false
	}
	return id, true
}
