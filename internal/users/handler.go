package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
	"github.com/arjun-dc/blog-platform/backend/internal/httpx"
	"github.com/arjun-dc/blog-platform/backend/internal/middleware"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

// Handler holds user HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create registers a new user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// List returns every user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.FindAll(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// Get returns one user by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// Update modifies the caller's own account.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.isSelf(r, id) {
		httpx.WriteError(w, apperr.Forbidden("You can only update your own account"))
		return
	}

	var req models.UpdateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// Delete removes the caller's own account.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.isSelf(r, id) {
		httpx.WriteError(w, apperr.Forbidden("You can only delete your own account"))
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) isSelf(r *http.Request, id string) bool {
	ident, ok := middleware.CallerIdentity(r.Context())
	return ok && ident.UserID == id
}
