package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/auth"
	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/service"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// actorFromCtx converts the gate's principal into the service-layer actor.
// Handlers behind protected routes can rely on the principal being present;
// the error branch only fires if a route was misregistered outside the gate.
func actorFromCtx(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewAuthenticationRequired()
	}
	return service.Actor{
		ID:    principal.ID,
		Admin: principal.HasRole(domain.RoleAdmin),
	}, nil
}

func dataResponse(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

func messageResponse(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message, "success": true}})
}
