package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	About    string `json:"about"`
}

// Validate reports per-field problems.
func (r RegisterRequest) Validate() map[string]any {
	details := map[string]any{}
	requireNonBlank(details, "name", r.Name)
	requireEmail(details, "email", r.Email)
	requirePassword(details, "password", r.Password)
	if len(details) == 0 {
		return nil
	}
	return details
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports per-field problems.
func (r LoginRequest) Validate() map[string]any {
	details := map[string]any{}
	requireNonBlank(details, "email", r.Email)
	requireNonBlank(details, "password", r.Password)
	if len(details) == 0 {
		return nil
	}
	return details
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
