package domain

import "time"

// Role names a granted authority. Stored denormalized on the user row.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User is the domain model for authors and commenters.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	About        string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
