package domain

import "time"

// Post is a published article belonging to one author and one category.
type Post struct {
	ID         string
	Title      string
	Content    string
	ImageName  string
	AuthorID   string
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostPage is one page of a sorted post listing.
type PostPage struct {
	Items         []*Post
	PageNumber    int
	PageSize      int
	TotalElements int64
	TotalPages    int
}

// LastPage reports whether this page is the final one.
func (p PostPage) LastPage() bool {
	return p.PageNumber >= p.TotalPages-1
}
