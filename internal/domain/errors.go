package domain

import "errors"

var (
	ErrInvalidInterval  = errors.New("booking end must be after start")
	ErrBookingConflict  = errors.New("resource is already booked for this period")
	ErrResourceNotFound = errors.New("resource not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrApprovalNotFound = errors.New("approval request not found")
	ErrStatusNotFound   = errors.New("status code not found")
	ErrNoApprover       = errors.New("no approver with the facility role")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidID        = errors.New("invalid id")
)
