package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/repository"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// CategoryService handles category CRUD.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, title, description string) (*domain.Category, error) {
	category := &domain.Category{Title: title, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, err
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// Update changes a category's title and description.
func (s *CategoryService) Update(ctx context.Context, id, title, description string) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Title = title
	category.Description = description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category and, through the schema, its posts.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
