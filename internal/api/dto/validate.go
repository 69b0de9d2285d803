package dto

import (
	"net/mail"
	"strings"
)

const minPasswordLength = 8

func requireNonBlank(details map[string]any, field, value string) {
	if strings.TrimSpace(value) == "" {
		details[field] = "must not be blank"
	}
}

func requireEmail(details map[string]any, field, value string) {
	if strings.TrimSpace(value) == "" {
		details[field] = "must not be blank"
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		details[field] = "must be a valid email address"
	}
}

func requirePassword(details map[string]any, field, value string) {
	if value == "" {
		details[field] = "must not be blank"
		return
	}
	if len(value) < minPasswordLength {
		details[field] = "must be at least 8 characters"
	}
}

func requireMinLength(details map[string]any, field, value string, min int) {
	if strings.TrimSpace(value) == "" {
		details[field] = "must not be blank"
		return
	}
	if len(value) < min {
		details[field] = "too short"
	}
}
