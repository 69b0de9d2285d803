package domain

import "time"

// Comment is a reader reply attached to a post.
type Comment struct {
	ID        string
	Content   string
	PostID    string
	AuthorID  string
	CreatedAt time.Time
}
