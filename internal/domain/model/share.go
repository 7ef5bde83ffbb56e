package model

import "time"

// ComparisonShare is a stored comparison reachable through an opaque identifier.
type ComparisonShare struct {
	ID           string                  `bson:"_id" json:"id"`
	Comparison   MultiQuantityComparison `bson:"comparison" json:"comparison"`
	PasswordHash string                  `bson:"password_hash,omitempty" json:"-"`
	Title        string                  `bson:"title,omitempty" json:"title,omitempty"`
	CreatedAt    time.Time               `bson:"created_at" json:"createdAt"`
	ExpiresAt    time.Time               `bson:"expires_at" json:"expiresAt"`
	Views        int64                   `bson:"views" json:"views"`
}

// Protected reports whether the share requires a password.
func (s *ComparisonShare) Protected() bool {
	return s.PasswordHash != ""
}

// Expired reports whether the share is past its expiry at now.
func (s *ComparisonShare) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
