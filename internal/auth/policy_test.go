package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyFailClosedDefault(t *testing.T) {
	policy := NewPolicy(
		Rule{Prefix: "/api/auth/", Level: AccessPublic},
	)

	require.Equal(t, AccessPublic, policy.LevelFor("POST", "/api/auth/login"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("GET", "/api/users"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("GET", "/totally/unknown"))
}

func TestPolicyLongestPrefixWins(t *testing.T) {
	policy := NewPolicy(
		Rule{Prefix: "/api/", Level: AccessPublic},
		Rule{Prefix: "/api/admin/", Level: AccessAuthenticated},
	)

	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/posts"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("GET", "/api/admin/settings"))
}

func TestPolicyMethodScopedRules(t *testing.T) {
	policy := NewPolicy(
		Rule{Prefix: "/api/posts", Methods: []string{"GET"}, Level: AccessPublic},
	)

	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/posts"))
	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/posts/abc"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("POST", "/api/posts/abc/comments"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("DELETE", "/api/posts/abc"))
}

func TestPolicyMethodRuleBeatsCatchAllOnSamePrefix(t *testing.T) {
	// Registration order must not matter for rules sharing a prefix.
	a := NewPolicy(
		Rule{Prefix: "/api/posts", Level: AccessAuthenticated},
		Rule{Prefix: "/api/posts", Methods: []string{"GET"}, Level: AccessPublic},
	)
	b := NewPolicy(
		Rule{Prefix: "/api/posts", Methods: []string{"GET"}, Level: AccessPublic},
		Rule{Prefix: "/api/posts", Level: AccessAuthenticated},
	)

	for _, policy := range []*Policy{a, b} {
		require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/posts"))
		require.Equal(t, AccessAuthenticated, policy.LevelFor("PUT", "/api/posts"))
	}
}

func TestDefaultPolicyTable(t *testing.T) {
	policy := DefaultPolicy()

	require.Equal(t, AccessPublic, policy.LevelFor("POST", "/api/auth/login"))
	require.Equal(t, AccessPublic, policy.LevelFor("POST", "/api/auth/register"))
	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/health/live"))
	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/metrics"))
	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/posts"))
	require.Equal(t, AccessPublic, policy.LevelFor("GET", "/api/categories/abc/posts"))

	require.Equal(t, AccessAuthenticated, policy.LevelFor("POST", "/api/categories"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("PUT", "/api/posts/abc"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("GET", "/api/users"))
	require.Equal(t, AccessAuthenticated, policy.LevelFor("DELETE", "/api/comments/abc"))
}
