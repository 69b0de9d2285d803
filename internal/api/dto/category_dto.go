package dto

import (
	"time"

	"github.com/subro/blog-api/internal/domain"
)

// CategoryRequest payload for creating or updating a category.
type CategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate reports per-field problems.
func (r CategoryRequest) Validate() map[string]any {
	details := map[string]any{}
	requireNonBlank(details, "title", r.Title)
	if len(details) == 0 {
		return nil
	}
	return details
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// NewCategoryResponses maps a slice of domain categories.
func NewCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = NewCategoryResponse(c)
	}
	return out
}
