package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/httpx"
	"github.com/arjun-dc/blog-platform/backend/internal/middleware"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// Handler holds post HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create persists a new post owned by the authenticated caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.CallerIdentity(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthorized("Missing bearer token"))
		return
	}

	var req models.CreatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	post, err := h.svc.Create(r.Context(), &req, ident.UserID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, post)
}

// List returns every post, author-joined, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FindAll(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

// Get returns one author-joined post.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

// Update modifies a post, owner only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.CallerIdentity(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthorized("Missing bearer token"))
		return
	}

	var req models.UpdatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	post, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req, ident.UserID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

// Delete removes a post, owner only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.CallerIdentity(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthorized("Missing bearer token"))
		return
	}

	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"), ident.UserID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
