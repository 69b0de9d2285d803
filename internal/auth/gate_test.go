package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/observability"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// stubUsers is an in-memory credential source.
type stubUsers struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	err   error
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubUsers) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// newGateApp builds a fiber app with the gate plus the same DomainError
// rendering the real transport layer uses.
func newGateApp(t *testing.T, codec *TokenCodec, users UserLookup, policy *Policy) *fiber.App {
	t.Helper()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	gate := NewGate(codec, users, policy, zap.NewNop(), metrics)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		}
		return nil
	})
	app.Use(gate.Handle)

	app.Get("/api/posts", func(c *fiber.Ctx) error {
		return c.SendString("public ok")
	})
	app.Get("/api/protected", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errors.New("principal missing on protected route")
		}
		return c.SendString("hello " + principal.Email)
	})
	return app
}

func testPolicy() *Policy {
	return NewPolicy(
		Rule{Prefix: "/api/posts", Methods: []string{"GET"}, Level: AccessPublic},
	)
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Error.Code
}

func bearerRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestGateAnonymousOnPublicRoute(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	app := newGateApp(t, codec, &stubUsers{users: map[string]*domain.User{}}, testPolicy())

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/posts", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateAnonymousOnProtectedRoute(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	app := newGateApp(t, codec, &stubUsers{users: map[string]*domain.User{}}, testPolicy())

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "AUTHENTICATION_REQUIRED", errorCode(t, resp))
}

func TestGateForeignSchemeTreatedAsAnonymous(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	app := newGateApp(t, codec, &stubUsers{users: map[string]*domain.User{}}, testPolicy())

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic YWxpY2U6cHc=")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same header on a protected route: still anonymous, so policy rejects.
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic YWxpY2U6cHc=")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "AUTHENTICATION_REQUIRED", errorCode(t, resp))
}

func TestGateMalformedTokenRejectedEvenOnPublicRoute(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	app := newGateApp(t, codec, &stubUsers{users: map[string]*domain.User{}}, testPolicy())

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/posts", "garbage.token.here"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "TOKEN_MALFORMED", errorCode(t, resp))
}

func TestGateExpiredToken(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	app := newGateApp(t, codec, &stubUsers{users: map[string]*domain.User{}}, testPolicy())

	expired := signedWithExpiry(t, testSecret, "alice-id", time.Now().Add(-time.Minute))
	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", expired))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "TOKEN_EXPIRED", errorCode(t, resp))
}

func TestGateValidTokenAttachesPrincipal(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	users := &stubUsers{users: map[string]*domain.User{
		"alice-id": {ID: "alice-id", Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}},
	}}
	app := newGateApp(t, codec, users, testPolicy())

	token, _, err := codec.Issue("alice-id", "alice@example.com", []domain.Role{domain.RoleUser})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "hello alice@example.com", string(body))
}

func TestGateRevokedSubjectNeverFallsBackToAnonymous(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	users := &stubUsers{users: map[string]*domain.User{
		"alice-id": {ID: "alice-id", Email: "alice@example.com"},
	}}
	app := newGateApp(t, codec, users, testPolicy())

	token, _, err := codec.Issue("alice-id", "alice@example.com", nil)
	require.NoError(t, err)

	// Account removed after issuance: the still-unexpired token must be
	// rejected, even on a route an anonymous caller could reach.
	users.remove("alice-id")

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/posts", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "SUBJECT_REVOKED", errorCode(t, resp))
}

func TestGateStoreOutageIsNotInvalidCredentials(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	users := &stubUsers{err: errors.New("connection refused")}
	app := newGateApp(t, codec, users, testPolicy())

	token, _, err := codec.Issue("alice-id", "alice@example.com", nil)
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "AUTH_UNAVAILABLE", errorCode(t, resp))
}

func TestGateConcurrentRequestsResolveIndependently(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	users := &stubUsers{users: map[string]*domain.User{
		"alice-id": {ID: "alice-id", Email: "alice@example.com"},
	}}
	app := newGateApp(t, codec, users, testPolicy())

	token, _, err := codec.Issue("alice-id", "alice@example.com", nil)
	require.NoError(t, err)

	const rounds = 32
	var wg sync.WaitGroup
	errCh := make(chan error, rounds*2)

	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", token))
			if err != nil {
				errCh <- err
				return
			}
			if resp.StatusCode != http.StatusOK {
				errCh <- errors.New("authenticated request rejected")
			}
		}()
		go func() {
			defer wg.Done()
			resp, err := app.Test(bearerRequest(http.MethodGet, "/api/protected", ""))
			if err != nil {
				errCh <- err
				return
			}
			if resp.StatusCode != http.StatusUnauthorized {
				errCh <- errors.New("anonymous request allowed through")
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}
