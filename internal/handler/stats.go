package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/service"
	"github.com/sakif/bloglist/internal/stats"
)

// StatsHandler exposes the aggregation functions over HTTP. It takes a fresh
// snapshot (a List call) per request and hands it to the pure stats package;
// the aggregations themselves never touch the store.
type StatsHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(blogs *service.BlogService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{blogs: blogs, logger: logger}
}

// statsResponse is the summary document. The ranking fields are pointers so
// an empty collection serializes them as null rather than fabricating a
// zero-valued favorite.
type statsResponse struct {
	BlogCount  int                `json:"blogCount"`
	TotalLikes int                `json:"totalLikes"`
	Favorite   *model.Blog        `json:"favorite"`
	MostBlogs  *stats.AuthorCount `json:"mostBlogs"`
	MostLikes  *stats.AuthorLikes `json:"mostLikes"`
}

// HandleStats returns aggregate statistics over the current blog collection.
//
// HTTP: GET /api/blogs/stats (public)
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := statsResponse{
		BlogCount:  len(blogs),
		TotalLikes: stats.TotalLikes(blogs),
	}

	// ErrNoBlogs just means the rankings stay null; any other error would
	// be a bug in the snapshot, not a client problem.
	if favorite, err := stats.FavoriteBlog(blogs); err == nil {
		resp.Favorite = &favorite
	} else if !errors.Is(err, stats.ErrNoBlogs) {
		writeError(w, err)
		return
	}
	if topAuthor, err := stats.MostBlogs(blogs); err == nil {
		resp.MostBlogs = &topAuthor
	}
	if topLiked, err := stats.MostLikes(blogs); err == nil {
		resp.MostLikes = &topLiked
	}

	writeJSON(w, http.StatusOK, resp)
}
