package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subro/blog-api/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller for the current request. It is a
// value derived from the stored user at the gate boundary, never the
// persistence entity itself, and is written into request locals exactly once.
type Principal struct {
	ID    string
	Email string
	Roles []domain.Role
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role domain.Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
