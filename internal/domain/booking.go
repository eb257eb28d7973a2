package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Active reports whether the booking still occupies its resource.
// Only active bookings count toward conflict detection.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

// Booking represents a reservation of a resource for a half-open
// interval [StartAt, EndAt).
type Booking struct {
	ID           string
	ResourceID   string
	RequestedBy  string
	StartAt      time.Time
	EndAt        time.Time
	Title        string
	Notes        string
	Participants *int
	Status       BookingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlaps tests half-open interval overlap with [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// BookingSummary is a booking joined with its resource and requester,
// the row shape used by period listings and reports.
type BookingSummary struct {
	ID          string
	Resource    string
	Kind        ResourceKind
	Zone        string
	StartAt     time.Time
	EndAt       time.Time
	Status      BookingStatus
	RequestedBy string
}
