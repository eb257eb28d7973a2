package app

import (
	"context"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/clock"
	"github.com/akrudenko/OfficeBankIS/internal/domain"
)

type ApprovalRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LookupApprovalStatus(ctx context.Context, code domain.ApprovalStatus) (int, error)
	LookupBookingStatus(ctx context.Context, code domain.BookingStatus) (int, error)
	UpdateApprovalStatus(ctx context.Context, approvalID string, statusID int, decidedAt time.Time) error
	GetApprovalBookingID(ctx context.Context, approvalID string) (string, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, statusID int, updatedAt time.Time) error
	ListPendingForApprover(ctx context.Context, approverID string) ([]domain.PendingApproval, error)
}

type ApprovalService struct {
	repo  ApprovalRepository
	clock clock.Clock
}

func NewApprovalService(repo ApprovalRepository, clk clock.Clock) *ApprovalService {
	return &ApprovalService{
		repo:  repo,
		clock: clk,
	}
}

type DecideResult struct {
	BookingID string
	Status    domain.ApprovalStatus
}

// Decide applies an approver's verdict to the approval request and its
// booking in one transaction, keeping the two records in lockstep.
// There is no state guard: deciding twice overwrites the earlier
// decision and its timestamp.
func (s *ApprovalService) Decide(ctx context.Context, approvalID string, approve bool) (DecideResult, error) {
	approvalStatus := domain.ApprovalStatusRejected
	bookingStatus := domain.BookingStatusRejected
	if approve {
		approvalStatus = domain.ApprovalStatusApproved
		bookingStatus = domain.BookingStatusApproved
	}

	now := s.clock.Now()
	var result DecideResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		statusID, err := s.repo.LookupApprovalStatus(txCtx, approvalStatus)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateApprovalStatus(txCtx, approvalID, statusID, now); err != nil {
			return err
		}

		bookingID, err := s.repo.GetApprovalBookingID(txCtx, approvalID)
		if err != nil {
			return err
		}
		bookingStatusID, err := s.repo.LookupBookingStatus(txCtx, bookingStatus)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateBookingStatus(txCtx, bookingID, bookingStatusID, now); err != nil {
			return err
		}

		result = DecideResult{BookingID: bookingID, Status: approvalStatus}
		return nil
	})
	if err != nil {
		return DecideResult{}, err
	}
	return result, nil
}

func (s *ApprovalService) ListPending(ctx context.Context, approverID string) ([]domain.PendingApproval, error) {
	return s.repo.ListPendingForApprover(ctx, approverID)
}
