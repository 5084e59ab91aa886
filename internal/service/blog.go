package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// BlogService handles business logic for blog posts: validation, the
// ownership policy, and orchestration of the repository.
//
// THE OWNERSHIP POLICY, SPELLED OUT PER OPERATION:
//
//	Create      → requires an authenticated owner; ownerID comes from the
//	              verified token, never from the request body
//	List/Get    → public
//	UpdateLikes → public ("like" button — anyone holding a blog id may bump
//	              the count, no token needed)
//	Delete      → requires the requester to BE the owner
//
// The asymmetry between UpdateLikes and Delete is intentional product
// behaviour, so it is encoded per operation here rather than behind a single
// generic "is owner" check.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// BlogInput is the client-supplied part of a new blog. The owner is
// deliberately absent — it comes from the authenticated identity.
type BlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// Create validates and saves a new blog post owned by ownerID.
//
// Title, author, and url are required; a missing one is a ValidationError
// naming the field. Likes defaults to 0 and negative input is clamped to 0 —
// the like count invariant is "never negative", not "reject weird clients".
func (s *BlogService) Create(ctx context.Context, ownerID string, input BlogInput) (*model.Blog, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("creating a blog requires authentication")
	}

	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	url := strings.TrimSpace(input.URL)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if author == "" {
		return nil, apperror.ValidationFailed("author", "author is required")
	}
	if url == "" {
		return nil, apperror.ValidationFailed("url", "url is required")
	}

	likes := input.Likes
	if likes < 0 {
		likes = 0
	}

	blog := &model.Blog{
		Title:  title,
		Author: author,
		URL:    url,
		Likes:  likes,
		UserID: ownerID,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("title", blog.Title),
		slog.String("ownerID", blog.UserID),
	)

	return blog, nil
}

// List returns every blog, each carrying its owner's username.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, err
	}
	return blogs, nil
}

// GetByID retrieves a single blog. Returns apperror.ErrNotFound if absent.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateLikes sets the like count of a blog. No authentication and no
// ownership check — see the policy table on BlogService. Negative values are
// clamped to 0.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}

	if likes < 0 {
		likes = 0
	}

	blog, err := s.repo.UpdateLikes(ctx, id, likes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog likes updated",
		slog.String("id", blog.ID),
		slog.Int("likes", blog.Likes),
	)

	return blog, nil
}

// Delete removes a blog permanently.
//
// The requester must be the owner: a missing blog is NotFound, a requester
// other than the owner is Forbidden. The existence check runs first so a
// wrong-owner request on a nonexistent blog reports NotFound, not Forbidden.
func (s *BlogService) Delete(ctx context.Context, id, requesterID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "blog ID is required")
	}
	if requesterID == "" {
		return apperror.Unauthorized("deleting a blog requires authentication")
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != requesterID {
		return apperror.Forbidden("only the owner can delete a blog")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted",
		slog.String("id", id),
		slog.String("ownerID", requesterID),
	)
	return nil
}
