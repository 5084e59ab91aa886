package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// BlogRepo implements repository.BlogRepository on a shared DB handle.
type BlogRepo struct {
	db *DB
}

var _ repository.BlogRepository = (*BlogRepo)(nil)

// NewBlogRepo creates a blog repository backed by db.
func NewBlogRepo(db *DB) *BlogRepo {
	return &BlogRepo{db: db}
}

// Create inserts a new blog post.
//
// The ID is a fresh xid — 20 chars, URL-safe, sortable by creation time, and
// never reused (xids embed a timestamp and a per-process counter). The caller
// sets UserID from the authenticated identity before calling; this layer just
// persists what it is given.
func (r *BlogRepo) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = xid.New().String()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// blogColumns is the SELECT list shared by GetByID and List. The LEFT JOIN
// pulls the owner's username so reads expose it without a second query;
// COALESCE covers rows whose owner was created before the join existed.
const blogColumns = `
	b.id, b.title, b.author, b.url, b.likes, b.user_id,
	COALESCE(u.username, ''), b.created_at, b.updated_at`

// GetByID retrieves a single blog by its ID, including the owner's username.
// Returns apperror.ErrNotFound if no blog exists with that ID.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var b model.Blog

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT`+blogColumns+`
		 FROM blogs b LEFT JOIN users u ON u.id = b.user_id
		 WHERE b.id = ?`,
		id,
	).Scan(
		&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID,
		&b.OwnerUsername, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	return &b, nil
}

// List retrieves every blog with its owner's username. Newest first; callers
// that need a different order (the stats snapshot doesn't care) sort
// themselves.
func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT`+blogColumns+`
		 FROM blogs b LEFT JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0, 16)

	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID,
			&b.OwnerUsername, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// UpdateLikes sets the like count of a blog and returns the updated record.
//
// Only likes is mutable through this path — title, author, url and the owner
// are immutable after creation. RowsAffected distinguishes "no such blog"
// from a successful no-op update in one round trip.
func (r *BlogRepo) UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error) {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE blogs SET likes = ?, updated_at = ? WHERE id = ?`,
		likes,
		time.Now(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating likes for blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("blog", id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a blog permanently. Ownership is checked by the service
// layer before this is called; here a missing row is simply NotFound.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
