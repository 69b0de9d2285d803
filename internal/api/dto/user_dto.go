package dto

import (
	"time"

	"github.com/subro/blog-api/internal/domain"
)

// UserUpsertRequest payload for creating or updating accounts.
type UserUpsertRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	About    string   `json:"about"`
	Roles    []string `json:"roles,omitempty"`
}

// Validate reports per-field problems. Password is optional on updates.
func (r UserUpsertRequest) Validate(requirePwd bool) map[string]any {
	details := map[string]any{}
	requireNonBlank(details, "name", r.Name)
	requireEmail(details, "email", r.Email)
	if requirePwd || r.Password != "" {
		requirePassword(details, "password", r.Password)
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// DomainRoles converts requested role names.
func (r UserUpsertRequest) DomainRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, domain.Role(role))
	}
	return roles
}

// UserResponse is the public view of an account. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	About     string    `json:"about"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		About:     user.About,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	return out
}
