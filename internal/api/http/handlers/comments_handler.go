package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/api/dto"
	"github.com/subro/blog-api/internal/service"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// CommentsHandler exposes comment endpoints.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: commentService}
}

// Create handles POST /api/posts/:postId/comments. The comment author is the
// authenticated caller.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid comment request", details)
	}

	comment, err := h.comments.Create(c.UserContext(), actor, c.Params("postId"), req.Content)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, dto.NewCommentResponse(comment))
}

// ListByPost handles GET /api/posts/:postId/comments.
func (h *CommentsHandler) ListByPost(c *fiber.Ctx) error {
	comments, err := h.comments.ListByPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewCommentResponses(comments))
}

// Delete handles DELETE /api/comments/:commentId.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.UserContext(), actor, c.Params("commentId")); err != nil {
		return err
	}
	return messageResponse(c, "comment deleted successfully")
}
