package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/api/dto"
	"github.com/subro/blog-api/internal/service"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// CategoriesHandler exposes category CRUD endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService}
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid category request", details)
	}

	category, err := h.categories.Create(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, dto.NewCategoryResponse(category))
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewCategoryResponses(categories))
}

// Get handles GET /api/categories/:categoryId.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.categories.Get(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewCategoryResponse(category))
}

// Update handles PUT /api/categories/:categoryId.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid category request", details)
	}

	category, err := h.categories.Update(c.UserContext(), c.Params("categoryId"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewCategoryResponse(category))
}

// Delete handles DELETE /api/categories/:categoryId.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("categoryId")); err != nil {
		return err
	}
	return messageResponse(c, "category deleted successfully")
}
