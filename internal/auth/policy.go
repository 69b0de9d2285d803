package auth

import (
	"sort"
	"strings"
)

// AccessLevel is what a route demands from the caller.
type AccessLevel int

const (
	// AccessAuthenticated is the zero value so unmatched routes fail closed.
	AccessAuthenticated AccessLevel = iota
	AccessPublic
)

// Rule maps a path prefix, optionally limited to specific methods, to an
// access level.
type Rule struct {
	Prefix  string
	Methods []string // empty matches every method
	Level   AccessLevel
}

// Policy is an immutable route-access table consulted by the request gate.
// Matching is deterministic: the longest matching prefix wins, and for rules
// sharing a prefix a method-limited rule beats a catch-all.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from the given rules.
func NewPolicy(rules ...Rule) *Policy {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Prefix) != len(sorted[j].Prefix) {
			return len(sorted[i].Prefix) > len(sorted[j].Prefix)
		}
		return len(sorted[i].Methods) > 0 && len(sorted[j].Methods) == 0
	})
	return &Policy{rules: sorted}
}

// LevelFor returns the access level for a request. Requests matching no rule
// require authentication.
func (p *Policy) LevelFor(method, path string) AccessLevel {
	for _, rule := range p.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if matchesMethod(rule.Methods, method) {
			return rule.Level
		}
	}
	return AccessAuthenticated
}

func matchesMethod(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// DefaultPolicy is the blog route table: login/registration, health, metrics
// and read-only content are public; everything else needs a principal.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Prefix: "/api/auth/", Level: AccessPublic},
		Rule{Prefix: "/health/", Level: AccessPublic},
		Rule{Prefix: "/metrics", Level: AccessPublic},
		Rule{Prefix: "/api/posts", Methods: []string{"GET"}, Level: AccessPublic},
		Rule{Prefix: "/api/categories", Methods: []string{"GET"}, Level: AccessPublic},
	)
}
