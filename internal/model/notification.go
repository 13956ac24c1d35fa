package model

import (
	"time"
)

// Notification types
const (
	NotificationTypePost         = "post"
	NotificationTypeReply        = "reply"
	NotificationTypeLike         = "like"
	NotificationTypeVerification = "verification"
	NotificationTypeReport       = "report"
	NotificationTypeSystem       = "system"
	NotificationTypeUser         = "user"
	NotificationTypeAdmin        = "admin"
)

// Notification represents a single entry in a user's notification partition.
// Read flips to true exactly once and never reverts.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	TargetID  string    `json:"target_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationCreate represents data for creating a notification via the admin API
type NotificationCreate struct {
	UserID   string `json:"user_id" binding:"required"`
	Type     string `json:"type" binding:"required,notificationtype"`
	Message  string `json:"message" binding:"required"`
	TargetID string `json:"target_id"`
}

// NotificationListResponse represents a list of notifications with unread metadata
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	Unread        int            `json:"unread"`
}

// NotificationMarkResponse represents the response after marking notifications as read
type NotificationMarkResponse struct {
	Success     bool `json:"success"`
	MarkedCount int  `json:"marked_count"`
}
