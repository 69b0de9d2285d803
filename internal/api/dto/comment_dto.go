package dto

import (
	"time"

	"github.com/subro/blog-api/internal/domain"
)

// CommentRequest payload for adding a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// Validate reports per-field problems.
func (r CommentRequest) Validate() map[string]any {
	details := map[string]any{}
	requireNonBlank(details, "content", r.Content)
	if len(details) == 0 {
		return nil
	}
	return details
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentResponses maps a slice of domain comments.
func NewCommentResponses(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = NewCommentResponse(c)
	}
	return out
}
