package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/subro/blog-api/internal/config"
	"github.com/subro/blog-api/internal/domain"
	apperrors "github.com/subro/blog-api/pkg/util"
)

type memoryUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
	err     error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]*domain.User{}}
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	user.ID = "user-" + string(rune('0'+m.nextID))
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) Delete(_ context.Context, id string) error {
	for email, user := range m.byEmail {
		if user.ID == id {
			delete(m.byEmail, email)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memoryUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.byEmail))
	for _, user := range m.byEmail {
		users = append(users, user)
	}
	return users, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "service-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	user, token, exp, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, []domain.Role{domain.RoleUser}, user.Roles)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	// Stored hash is not the plaintext.
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)

	logged, loginToken, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)

	claims, err := svc.TokenCodec().Verify(loginToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestRegisterConflict(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Other", "alice@example.com", "different", "")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "CONFLICT", domainErr.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	_, _, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	_, _, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrong-pass")

	var unknown, wrongPass *apperrors.DomainError
	require.ErrorAs(t, unknownErr, &unknown)
	require.ErrorAs(t, wrongPassErr, &wrongPass)

	require.Equal(t, unknown.Code, wrongPass.Code)
	require.Equal(t, unknown.Message, wrongPass.Message)
	require.Equal(t, unknown.HTTPStatus, wrongPass.HTTPStatus)
	require.Equal(t, "INVALID_CREDENTIALS", unknown.Code)
}

func TestLoginStoreOutage(t *testing.T) {
	repo := newMemoryUserRepo()
	repo.err = errors.New("connection refused")
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "AUTH_UNAVAILABLE", domainErr.Code)
	require.NotEqual(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginIssuesIndependentTokens(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	_, first, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, second, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The earlier token still verifies after a fresh login.
	_, err = svc.TokenCodec().Verify(first)
	require.NoError(t, err)

	_, err = svc.TokenCodec().Verify(second)
	require.NoError(t, err)
}
