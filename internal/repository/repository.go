// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage is the concrete implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/bloglist/internal/model"
)

// UserRepository stores user accounts, keyed by unique username.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict if the
	// username is already taken (case-sensitive exact match).
	Create(ctx context.Context, user *model.User) error
	// GetByUsername returns apperror.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// UpsertGitHub inserts or updates a user keyed by GitHub ID, used by
	// the OAuth login flow. The internal ID is preserved across logins.
	UpsertGitHub(ctx context.Context, user *model.User) error
}

// BlogRepository stores blog posts, keyed by generated id, each carrying the
// owner's user ID as a foreign reference.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	// GetByID and List populate OwnerUsername via a read-only join.
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	// UpdateLikes sets the like count of a single blog. Returns
	// apperror.ErrNotFound if the blog does not exist.
	UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
}
