package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
)

func createTestBlog(t *testing.T, db *DB, ownerID, title string, likes int) *model.Blog {
	t.Helper()
	blog := &model.Blog{
		Title:  title,
		Author: "Gino",
		URL:    "www.nonloso.com",
		Likes:  likes,
		UserID: ownerID,
	}
	if err := NewBlogRepo(db).Create(context.Background(), blog); err != nil {
		t.Fatalf("failed to create test blog: %v", err)
	}
	return blog
}

func TestBlogCreate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "mario")

	blog := &model.Blog{
		Title:  "Il primo post",
		Author: "Gino",
		URL:    "www.nonloso.com",
		Likes:  2,
		UserID: owner.ID,
	}

	if err := NewBlogRepo(db).Create(context.Background(), blog); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if blog.ID == "" {
		t.Error("Create() did not set blog.ID")
	}
	if blog.CreatedAt.IsZero() {
		t.Error("Create() did not set blog.CreatedAt")
	}
}

func TestBlogCreate_IDsAreNeverReused(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "mario")

	first := createTestBlog(t, db, owner.ID, "first", 0)
	firstID := first.ID

	if err := NewBlogRepo(db).Delete(context.Background(), firstID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	second := createTestBlog(t, db, owner.ID, "second", 0)
	if second.ID == firstID {
		t.Errorf("ID %q was reused after deletion", firstID)
	}
}

func TestBlogCreate_UnknownOwnerRejected(t *testing.T) {
	db := newTestDB(t)

	// user_id references users(id); foreign keys are enabled on every
	// connection via the DSN, so a dangling owner must be rejected.
	blog := &model.Blog{
		Title:  "orphan",
		Author: "Gino",
		URL:    "www.nonloso.com",
		UserID: "no-such-user",
	}
	if err := NewBlogRepo(db).Create(context.Background(), blog); err == nil {
		t.Fatal("Create() with a nonexistent owner should fail the foreign key check")
	}
}

func TestBlogGetByID_JoinsOwnerUsername(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "mario")
	created := createTestBlog(t, db, owner.ID, "Il primo post", 2)

	found, err := NewBlogRepo(db).GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "Il primo post" {
		t.Errorf("Title = %q, want %q", found.Title, "Il primo post")
	}
	if found.OwnerUsername != "mario" {
		t.Errorf("OwnerUsername = %q, want %q", found.OwnerUsername, "mario")
	}
}

func TestBlogGetByID_NotFound(t *testing.T) {
	blogs := NewBlogRepo(newTestDB(t))

	_, err := blogs.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestBlogList(t *testing.T) {
	db := newTestDB(t)
	mario := createTestUser(t, db, "mario")
	franco := createTestUser(t, db, "franco")

	createTestBlog(t, db, mario.ID, "Il primo post", 2)
	createTestBlog(t, db, franco.ID, "Il secondo post", 10)

	blogs, err := NewBlogRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("List() returned %d blogs, want 2", len(blogs))
	}

	// Every blog carries its owner's username.
	byTitle := make(map[string]model.Blog, len(blogs))
	for _, b := range blogs {
		byTitle[b.Title] = b
	}
	if byTitle["Il primo post"].OwnerUsername != "mario" {
		t.Errorf("OwnerUsername = %q, want %q", byTitle["Il primo post"].OwnerUsername, "mario")
	}
	if byTitle["Il secondo post"].OwnerUsername != "franco" {
		t.Errorf("OwnerUsername = %q, want %q", byTitle["Il secondo post"].OwnerUsername, "franco")
	}
}

func TestBlogList_Empty(t *testing.T) {
	blogs, err := NewBlogRepo(newTestDB(t)).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("List() returned %d blogs, want 0", len(blogs))
	}
}

func TestBlogUpdateLikes(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "mario")
	created := createTestBlog(t, db, owner.ID, "Il primo post", 2)

	updated, err := NewBlogRepo(db).UpdateLikes(context.Background(), created.ID, 50)
	if err != nil {
		t.Fatalf("UpdateLikes() error = %v", err)
	}
	if updated.Likes != 50 {
		t.Errorf("Likes = %d, want 50", updated.Likes)
	}

	// Only likes changed.
	if updated.Title != created.Title {
		t.Errorf("Title changed: %q vs %q", updated.Title, created.Title)
	}
	if updated.UserID != created.UserID {
		t.Errorf("UserID changed: %q vs %q", updated.UserID, created.UserID)
	}
}

func TestBlogUpdateLikes_NotFound(t *testing.T) {
	blogs := NewBlogRepo(newTestDB(t))

	_, err := blogs.UpdateLikes(context.Background(), "nonexistent", 10)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateLikes() error = %v, want ErrNotFound", err)
	}
}

func TestBlogDelete(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "mario")
	created := createTestBlog(t, db, owner.ID, "to delete", 0)

	blogs := NewBlogRepo(db)
	if err := blogs.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := blogs.GetByID(context.Background(), created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestBlogDelete_NotFound(t *testing.T) {
	blogs := NewBlogRepo(newTestDB(t))

	err := blogs.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
