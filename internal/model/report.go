package model

import (
	"time"
)

// Report lifecycle. Pending is the only non-terminal state.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// Reportable content kinds
const (
	ContentTypePost  = "post"
	ContentTypeReply = "reply"
)

// Report reasons offered to users
const (
	ReportReasonHarassment     = "harassment"
	ReportReasonSelfHarm       = "self_harm"
	ReportReasonSpam           = "spam"
	ReportReasonMisinformation = "misinformation"
	ReportReasonOffensive      = "offensive"
	ReportReasonOther          = "other"
)

// Report represents a user report against a post or reply
type Report struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	ContentType string    `json:"content_type"`
	ReportedBy  string    `json:"reported_by"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportCreate represents data for filing a report
type ReportCreate struct {
	ContentID   string `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required,oneof=post reply"`
	Reason      string `json:"reason" binding:"required,reportreason"`
}

// Terminal reports that no dismiss or remove call can change again.
func (r *Report) IsTerminal() bool {
	return r.Status == ReportStatusReviewed || r.Status == ReportStatusResolved
}
