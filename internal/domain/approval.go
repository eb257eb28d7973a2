package domain

import "time"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// ApprovalRequest ties a booking in a restricted zone to the approver
// who must decide on it. One per booking, created only at booking time.
type ApprovalRequest struct {
	ID         string
	BookingID  string
	ApproverID string
	Status     ApprovalStatus
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// PendingApproval is the inbox row shown to an approver.
type PendingApproval struct {
	ID          string
	BookingID   string
	Resource    string
	StartAt     time.Time
	EndAt       time.Time
	RequestedBy string
	Status      ApprovalStatus
}
