package domain

import "time"

// Category groups posts by topic.
type Category struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
