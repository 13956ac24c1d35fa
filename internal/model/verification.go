package model

import (
	"time"
)

// VerificationRequest represents a professional account awaiting review.
// The entry is removed on verify and on reject; reject also deletes the
// underlying account.
type VerificationRequest struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Occupation       string    `json:"occupation"`
	IdentityDocument string    `json:"identity_document,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
