package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/api/dto"
	"github.com/subro/blog-api/internal/service"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/users (admin).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(true); details != nil {
		return apperrors.NewValidationError("invalid user request", details)
	}

	user, err := h.users.Create(c.UserContext(), req.Name, req.Email, req.Password, req.About, req.DomainRoles())
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, dto.NewUserResponse(user))
}

// List handles GET /api/users (admin).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewUserResponses(users))
}

// Get handles GET /api/users/:userId. Account owner or admin.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id := c.Params("userId")
	if !actor.Owns(id) {
		return apperrors.NewForbidden("cannot view another user")
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewUserResponse(user))
}

// Update handles PUT /api/users/:userId.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.UserUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(false); details != nil {
		return apperrors.NewValidationError("invalid user request", details)
	}

	user, err := h.users.Update(c.UserContext(), actor, c.Params("userId"), req.Name, req.Email, req.Password, req.About)
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, dto.NewUserResponse(user))
}

// Delete handles DELETE /api/users/:userId.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), actor, c.Params("userId")); err != nil {
		return err
	}
	return messageResponse(c, "user deleted successfully")
}
