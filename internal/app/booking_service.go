package app

import (
	"context"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/clock"
	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/google/uuid"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetResourceForUpdate(ctx context.Context, resourceID string) (domain.Resource, error)
	HasActiveOverlap(ctx context.Context, resourceID string, start, end time.Time) (bool, error)
	LookupBookingStatus(ctx context.Context, code domain.BookingStatus) (int, error)
	LookupApprovalStatus(ctx context.Context, code domain.ApprovalStatus) (int, error)
	CreateBooking(ctx context.Context, booking domain.Booking, statusID int) error
	CreateApprovalRequest(ctx context.Context, approval domain.ApprovalRequest, statusID int) error
	UpdateBookingStatus(ctx context.Context, bookingID string, statusID int, updatedAt time.Time) error
	ListRolesForUser(ctx context.Context, userID string) ([]string, error)
	ListApproverCandidates(ctx context.Context, roleCode string) ([]string, error)
	ListBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error)
}

type BookingService struct {
	repo  BookingRepository
	clock clock.Clock
}

func NewBookingService(repo BookingRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:  repo,
		clock: clk,
	}
}

type CreateBookingInput struct {
	ResourceID   string
	RequestedBy  string
	StartAt      time.Time
	EndAt        time.Time
	Title        string
	Notes        string
	Participants *int
}

type CreateBookingResult struct {
	Booking          domain.Booking
	RequiresApproval bool
	ApproverID       string
	Message          string
}

// CreateBooking runs the whole creation workflow in one transaction:
// lock the resource row, check for overlap, apply the approval policy,
// insert the booking and, when required, its approval request. Any
// failure rolls back every write, including the booking row itself.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (CreateBookingResult, error) {
	if !in.EndAt.After(in.StartAt) {
		return CreateBookingResult{}, domain.ErrInvalidInterval
	}

	now := s.clock.Now()
	var result CreateBookingResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		resource, err := s.repo.GetResourceForUpdate(txCtx, in.ResourceID)
		if err != nil {
			return err
		}

		conflict, err := s.repo.HasActiveOverlap(txCtx, in.ResourceID, in.StartAt, in.EndAt)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrBookingConflict
		}

		roles, err := s.repo.ListRolesForUser(txCtx, in.RequestedBy)
		if err != nil {
			return err
		}
		requiresApproval := domain.RequiresApproval(resource.ZoneRestricted, roles)

		status := domain.BookingStatusApproved
		if requiresApproval {
			status = domain.BookingStatusPending
		}
		statusID, err := s.repo.LookupBookingStatus(txCtx, status)
		if err != nil {
			return err
		}

		booking := domain.Booking{
			ID:           uuid.NewString(),
			ResourceID:   in.ResourceID,
			RequestedBy:  in.RequestedBy,
			StartAt:      in.StartAt,
			EndAt:        in.EndAt,
			Title:        in.Title,
			Notes:        in.Notes,
			Participants: in.Participants,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.CreateBooking(txCtx, booking, statusID); err != nil {
			return err
		}

		result = CreateBookingResult{
			Booking:          booking,
			RequiresApproval: requiresApproval,
			Message:          "booking confirmed",
		}
		if !requiresApproval {
			return nil
		}

		candidates, err := s.repo.ListApproverCandidates(txCtx, domain.RoleFacility)
		if err != nil {
			return err
		}
		approverID, ok := domain.PickApprover(candidates)
		if !ok {
			// Rolls back the booking insert above as well.
			return domain.ErrNoApprover
		}

		pendingID, err := s.repo.LookupApprovalStatus(txCtx, domain.ApprovalStatusPending)
		if err != nil {
			return err
		}
		approval := domain.ApprovalRequest{
			ID:         uuid.NewString(),
			BookingID:  booking.ID,
			ApproverID: approverID,
			Status:     domain.ApprovalStatusPending,
			CreatedAt:  now,
		}
		if err := s.repo.CreateApprovalRequest(txCtx, approval, pendingID); err != nil {
			return err
		}

		result.ApproverID = approverID
		result.Message = "booking sent for approval"
		return nil
	})
	if err != nil {
		return CreateBookingResult{}, err
	}

	return result, nil
}

// HasConflict reports whether any active booking overlaps [start, end)
// on the resource. An empty booking set is never a conflict.
func (s *BookingService) HasConflict(ctx context.Context, resourceID string, start, end time.Time) (bool, error) {
	return s.repo.HasActiveOverlap(ctx, resourceID, start, end)
}

// CancelBooking sets CANCELLED unconditionally; cancelling an already
// terminal booking re-applies the status rather than failing.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) error {
	now := s.clock.Now()
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		statusID, err := s.repo.LookupBookingStatus(txCtx, domain.BookingStatusCancelled)
		if err != nil {
			return err
		}
		return s.repo.UpdateBookingStatus(txCtx, bookingID, statusID, now)
	})
}

func (s *BookingService) ListBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidInterval
	}
	return s.repo.ListBookingsInPeriod(ctx, start, end)
}
