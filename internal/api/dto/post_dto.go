package dto

import (
	"time"

	"github.com/subro/blog-api/internal/domain"
)

// PostCreateRequest payload for publishing a post.
type PostCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate reports per-field problems.
func (r PostCreateRequest) Validate() map[string]any {
	details := map[string]any{}
	requireMinLength(details, "title", r.Title, 5)
	requireMinLength(details, "content", r.Content, 5)
	if len(details) == 0 {
		return nil
	}
	return details
}

// PostUpdateRequest payload for editing a post. CategoryID is optional.
type PostUpdateRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id,omitempty"`
}

// Validate reports per-field problems.
func (r PostUpdateRequest) Validate() map[string]any {
	details := map[string]any{}
	requireMinLength(details, "title", r.Title, 5)
	requireMinLength(details, "content", r.Content, 5)
	if len(details) == 0 {
		return nil
	}
	return details
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageName  string    `json:"image_name,omitempty"`
	AuthorID   string    `json:"author_id"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPostResponse maps a domain post.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		ImageName:  post.ImageName,
		AuthorID:   post.AuthorID,
		CategoryID: post.CategoryID,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// NewPostResponses maps a slice of domain posts.
func NewPostResponses(posts []*domain.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = NewPostResponse(p)
	}
	return out
}

// PostPageResponse is one page of a sorted listing.
type PostPageResponse struct {
	Content       []PostResponse `json:"content"`
	PageNumber    int            `json:"page_number"`
	PageSize      int            `json:"page_size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
	LastPage      bool           `json:"last_page"`
}

// NewPostPageResponse maps a domain page.
func NewPostPageResponse(page *domain.PostPage) PostPageResponse {
	return PostPageResponse{
		Content:       NewPostResponses(page.Items),
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		LastPage:      page.LastPage(),
	}
}
