package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/observability"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// UserLookup resolves a subject id to its current stored user. The gate only
// reads through it; pgx.ErrNoRows signals that the subject is gone.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Gate authenticates every request exactly once. It holds no per-request
// state of its own: codec, users and policy are read-only after construction,
// so a single Gate serves arbitrarily many concurrent requests.
type Gate struct {
	codec   *TokenCodec
	users   UserLookup
	policy  *Policy
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGate constructs the request gate.
func NewGate(codec *TokenCodec, users UserLookup, policy *Policy, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	return &Gate{codec: codec, users: users, policy: policy, logger: logger, metrics: metrics}
}

// Handle runs the per-request authentication state machine:
//
//	no header            -> anonymous, policy decides
//	malformed token      -> 400 TOKEN_MALFORMED, terminal
//	expired token        -> 401 TOKEN_EXPIRED, terminal
//	subject gone         -> 401 SUBJECT_REVOKED, terminal
//	store unavailable    -> 503 AUTH_UNAVAILABLE, terminal
//	valid + subject live -> principal attached, policy decides
//
// A valid-looking header never degrades to anonymous: once a bearer token is
// presented, every failure is terminal. Only a genuinely absent (or
// foreign-scheme) header continues as anonymous, and whether that request is
// allowed is the policy's call.
func (g *Gate) Handle(c *fiber.Ctx) error {
	var principal *Principal

	if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		claims, err := g.codec.Verify(token)
		switch {
		case errors.Is(err, ErrTokenExpired):
			g.metrics.RecordAuthDecision("token_expired")
			return apperrors.NewTokenExpired()
		case err != nil:
			g.metrics.RecordAuthDecision("token_malformed")
			return apperrors.NewTokenMalformed()
		}

		user, err := g.users.GetByID(c.UserContext(), claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// The token was signed for an account that no longer
				// exists. Reject loudly rather than fall through as
				// anonymous, which would mask revoked-account abuse.
				g.metrics.RecordAuthDecision("subject_revoked")
				g.logger.Warn("token for revoked subject", zap.String("subject", claims.Subject))
				return apperrors.NewSubjectRevoked()
			}
			g.metrics.RecordAuthDecision("store_unavailable")
			return apperrors.NewAuthUnavailable(err)
		}

		principal = &Principal{ID: user.ID, Email: user.Email, Roles: user.Roles}
	}

	if g.policy.LevelFor(c.Method(), c.Path()) != AccessPublic && principal == nil {
		g.metrics.RecordAuthDecision("authentication_required")
		return apperrors.NewAuthenticationRequired()
	}

	// Single write of the request's authentication outcome. Nothing after
	// this point re-derives or overwrites it.
	if principal != nil {
		g.metrics.RecordAuthDecision("authenticated")
		c.Locals(principalKey, principal)
	} else {
		g.metrics.RecordAuthDecision("anonymous")
	}
	return c.Next()
}

// bearerToken extracts the token from an Authorization header. A missing
// header or one with a different scheme reads as "no credentials presented",
// not as an error.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
