// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User represents a registered Chronicle account. Email is the unique key
// for the whole user collection; every cross-entity reference (post
// authorship, follow edges, notification recipients) is by email.
type User struct {
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Password     string    `json:"password,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsAdmin      bool      `json:"isAdmin,omitempty"`
	Disabled     bool      `json:"disabled,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive regardless of how the address was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Redacted returns a copy safe for API responses: the password hash is
// stripped. The stored document keeps the hash; responses never carry it.
func (u User) Redacted() User {
	u.Password = ""
	return u
}
