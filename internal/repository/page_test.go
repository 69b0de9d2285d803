package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalizeDefaults(t *testing.T) {
	page := PageRequest{}.Normalize()

	assert.Equal(t, 0, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, "title", page.SortBy)
	assert.Equal(t, "asc", page.SortDir)
}

func TestPageRequestNormalizeClamps(t *testing.T) {
	page := PageRequest{Number: -3, Size: 5000}.Normalize()

	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 100, page.Size)
}

func TestPageRequestNormalizeSortWhitelist(t *testing.T) {
	cases := []struct {
		sortBy string
		want   string
	}{
		{"title", "title"},
		{"createdAt", "createdAt"},
		{"password_hash", "title"},
		{"created_at; DROP TABLE posts", "title"},
		{"", "title"},
	}
	for _, tc := range cases {
		page := PageRequest{SortBy: tc.sortBy}.Normalize()
		assert.Equal(t, tc.want, page.SortBy, "sortBy %q", tc.sortBy)
	}
}

func TestPageRequestNormalizeSortDirection(t *testing.T) {
	assert.Equal(t, "desc", PageRequest{SortDir: "DESC"}.Normalize().SortDir)
	assert.Equal(t, "desc", PageRequest{SortDir: "desc"}.Normalize().SortDir)
	assert.Equal(t, "asc", PageRequest{SortDir: "sideways"}.Normalize().SortDir)
	assert.Equal(t, "asc", PageRequest{}.Normalize().SortDir)
}
