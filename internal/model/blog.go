package model

import "time"

// Blog represents a single blog post.
//
// UserID is the owner — it is set from the authenticated identity when the
// blog is created and never changes afterwards. Author is free text (the
// article's author, not necessarily the account that saved it), which is why
// both fields exist.
//
// OwnerUsername is a read-only join: list and get operations populate it from
// the users table so clients can show who saved the post without a second
// request. It is never written back.
type Blog struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	URL           string    `json:"url"`
	Likes         int       `json:"likes"`
	UserID        string    `json:"userId"`
	OwnerUsername string    `json:"ownerUsername,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
