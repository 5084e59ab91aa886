// Package stats computes aggregate statistics over a snapshot of blogs.
//
// Everything here is a pure function: no I/O, no auth, no mutation of the
// input slice. Callers pass any in-memory []model.Blog (usually the result of
// a repository List) and may run these concurrently against distinct
// snapshots.
//
// TIE-BREAKING IS PART OF THE CONTRACT:
// FavoriteBlog replaces the running best on likes >= best, so among tied
// blogs the latest in input order wins. The author rankings replace only on
// strict improvement over a first-appearance order, so tied authors resolve
// to whoever appeared first. Relying on a sort's stability would make these
// tie-breaks an accident; the explicit folds make them a guarantee.
package stats

import (
	"errors"

	"github.com/sakif/bloglist/internal/model"
)

// ErrNoBlogs is returned by the ranking functions when given an empty
// snapshot — there is no meaningful favorite or top author of nothing.
var ErrNoBlogs = errors.New("stats: no blogs in snapshot")

// AuthorCount is the result of MostBlogs: an author and how many blogs
// they have.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the result of MostLikes: an author and their summed likes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes returns the sum of likes across all blogs. An empty snapshot
// sums to 0.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. On ties the latest tied
// blog in input order wins. Returns ErrNoBlogs for an empty snapshot.
func FavoriteBlog(blogs []model.Blog) (model.Blog, error) {
	if len(blogs) == 0 {
		return model.Blog{}, ErrNoBlogs
	}

	best := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes >= best.Likes {
			best = b
		}
	}
	return best, nil
}

// MostBlogs returns the author with the most blogs. On ties the author who
// appears first in the input wins. Returns ErrNoBlogs for an empty snapshot.
func MostBlogs(blogs []model.Blog) (AuthorCount, error) {
	if len(blogs) == 0 {
		return AuthorCount{}, ErrNoBlogs
	}

	counts := make(map[string]int, len(blogs))
	// order remembers when each author first appeared; the map alone
	// would randomize tie-breaks.
	order := make([]string, 0, len(blogs))

	for _, b := range blogs {
		if _, seen := counts[b.Author]; !seen {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}

	best := AuthorCount{Author: order[0], Blogs: counts[order[0]]}
	for _, author := range order[1:] {
		if counts[author] > best.Blogs {
			best = AuthorCount{Author: author, Blogs: counts[author]}
		}
	}
	return best, nil
}

// MostLikes returns the author with the highest summed likes across their
// blogs, with the same first-appearance tie-break as MostBlogs. Returns
// ErrNoBlogs for an empty snapshot.
func MostLikes(blogs []model.Blog) (AuthorLikes, error) {
	if len(blogs) == 0 {
		return AuthorLikes{}, ErrNoBlogs
	}

	likes := make(map[string]int, len(blogs))
	order := make([]string, 0, len(blogs))

	for _, b := range blogs {
		if _, seen := likes[b.Author]; !seen {
			order = append(order, b.Author)
		}
		likes[b.Author] += b.Likes
	}

	best := AuthorLikes{Author: order[0], Likes: likes[order[0]]}
	for _, author := range order[1:] {
		if likes[author] > best.Likes {
			best = AuthorLikes{Author: author, Likes: likes[author]}
		}
	}
	return best, nil
}
