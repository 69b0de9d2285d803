package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/subro/blog-api/internal/auth"
	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/repository"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// UserService handles account management beyond registration.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Create adds an account on behalf of an administrator.
func (s *UserService) Create(ctx context.Context, name, email, password, about string, roles []domain.Role) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		About:        about,
		Roles:        roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Update changes profile fields. Only the account owner or an administrator
// may update; an empty password leaves the stored hash untouched.
func (s *UserService) Update(ctx context.Context, actor Actor, id, name, email, password, about string) (*domain.User, error) {
	if !actor.Owns(id) {
		return nil, apperrors.NewForbidden("cannot modify another user")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.About = about
	if password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Owner or administrator only.
func (s *UserService) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.Owns(id) {
		return apperrors.NewForbidden("cannot delete another user")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
