package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/api/dto"
	"github.com/subro/blog-api/internal/repository"
	"github.com/subro/blog-api/internal/service"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// PostsHandler exposes post CRUD, search and image endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// Create handles POST /api/users/:userId/categories/:categoryId/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid post request", details)
	}

	post, err := h.posts.Create(c.UserContext(), actor, c.Params("userId"), c.Params("categoryId"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, dto.NewPostResponse(post))
}

// List handles GET /api/posts with pagination and sorting parameters.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	page := repository.PageRequest{
		Number:  c.QueryInt("pageNumber", 0),
		Size:    c.QueryInt("pageSize", repository.DefaultPageSize),
		SortBy:  c.Query("sortBy", "title"),
		SortDir: c.Query("sortDirection", "asc"),
	}

	result, err := h.posts.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostPageResponse(result))
}

// Get handles GET /api/posts/:postId.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.UserContext(), c.Params("postId"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponse(post))
}

// ListByAuthor handles GET /api/users/:userId/posts.
func (h *PostsHandler) ListByAuthor(c *fiber.Ctx) error {
	posts, err := h.posts.ListByAuthor(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponses(posts))
}

// ListByCategory handles GET /api/categories/:categoryId/posts.
func (h *PostsHandler) ListByCategory(c *fiber.Ctx) error {
	posts, err := h.posts.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponses(posts))
}

// Search handles GET /api/posts/search/:keywords.
func (h *PostsHandler) Search(c *fiber.Ctx) error {
	posts, err := h.posts.Search(c.UserContext(), c.Params("keywords"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponses(posts))
}

// Update handles PUT /api/posts/:postId.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid post request", details)
	}

	post, err := h.posts.Update(c.UserContext(), actor, c.Params("postId"), req.Title, req.Content, req.CategoryID)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponse(post))
}

// Delete handles DELETE /api/posts/:postId.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.UserContext(), actor, c.Params("postId")); err != nil {
		return err
	}
	return messageResponse(c, "post deleted successfully")
}

// UploadImage handles POST /api/posts/:postId/image (multipart form, field "image").
func (h *PostsHandler) UploadImage(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("image file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable image file", nil)
	}
	defer file.Close()

	post, err := h.posts.AttachImage(c.UserContext(), actor, c.Params("postId"), fileHeader.Filename, file)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewPostResponse(post))
}

// DownloadImage handles GET /api/posts/images/:imageName.
func (h *PostsHandler) DownloadImage(c *fiber.Ctx) error {
	rc, err := h.posts.Image(c.UserContext(), c.Params("imageName"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendStream(rc)
}
