package entity

import "time"

// APIKey is the stored record for an issued API key. Only the SHA-256 hash of
// the raw key is kept; the raw key is shown once at creation time.
type APIKey struct {
	KeyHash          string     `json:"-"`
	UserEmail        string     `json:"user_email"`
	CreditsRemaining int        `json:"credits_remaining"`
	CreatedAt        time.Time  `json:"created_at"`
	LastUsed         *time.Time `json:"last_used"`
	IsActive         bool       `json:"is_active"`
}
