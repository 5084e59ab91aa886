package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/service"
)

// BlogHandler manages the blog CRUD endpoints.
//
// Which routes are gated is decided by the router (internal/server), not
// here — the handler just reads the identity from the context when an
// operation needs one.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// HandleList returns all blogs, each with its owner's username.
//
// HTTP: GET /api/blogs (public)
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

// HandleGetByID returns a single blog.
//
// HTTP: GET /api/blogs/{id} (public)
func (h *BlogHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleCreate saves a new blog owned by the authenticated user.
//
// HTTP: POST /api/blogs (behind RequireAuth)
// BODY: {"title":"...","author":"...","url":"...","likes":4}
//
// The owner is ALWAYS the token's identity. A userId in the request body is
// ignored — BlogInput has no such field, so clients cannot spoof ownership.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication token required"))
		return
	}

	var input service.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	blog, err := h.blogs.Create(r.Context(), claims.UserID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	// The create path doesn't join against users; the token already knows
	// who the owner is.
	blog.OwnerUsername = claims.Username

	writeJSON(w, http.StatusCreated, blog)
}

type updateLikesRequest struct {
	Likes int `json:"likes"`
}

// HandleUpdateLikes sets a blog's like count.
//
// HTTP: PUT /api/blogs/{id} (public — the "like" button needs no account)
// BODY: {"likes":50}
//
// 200 with the updated blog, 404 if the id doesn't exist.
func (h *BlogHandler) HandleUpdateLikes(w http.ResponseWriter, r *http.Request) {
	var req updateLikesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid likes JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	blog, err := h.blogs.UpdateLikes(r.Context(), r.PathValue("id"), req.Likes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog owned by the authenticated user.
//
// HTTP: DELETE /api/blogs/{id} (behind RequireAuth)
//
// 204 on success, 404 if the blog doesn't exist, 403 if the requester isn't
// the owner.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication token required"))
		return
	}

	if err := h.blogs.Delete(r.Context(), r.PathValue("id"), claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
