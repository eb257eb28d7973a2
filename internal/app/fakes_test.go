package app

import (
	"context"
	"strconv"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
)

var bookingStatusIDs = map[domain.BookingStatus]int{
	domain.BookingStatusPending:   1,
	domain.BookingStatusApproved:  2,
	domain.BookingStatusRejected:  3,
	domain.BookingStatusCancelled: 4,
}

var approvalStatusIDs = map[domain.ApprovalStatus]int{
	domain.ApprovalStatusPending:  1,
	domain.ApprovalStatusApproved: 2,
	domain.ApprovalStatusRejected: 3,
}

func bookingStatusByID(id int) domain.BookingStatus {
	for code, sid := range bookingStatusIDs {
		if sid == id {
			return code
		}
	}
	return ""
}

type storedBooking struct {
	booking  domain.Booking
	statusID int
}

type storedApproval struct {
	req      domain.ApprovalRequest
	statusID int
}

// fakeBookingRepo emulates the transactional repository in memory.
// WithTx snapshots the mutable state and restores it when the closure
// fails, mirroring commit-or-rollback-all semantics.
type fakeBookingRepo struct {
	resources map[string]domain.Resource
	roles     map[string][]string
	approvers []string
	bookings  []storedBooking
	approvals []storedApproval
	seq       int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		resources: make(map[string]domain.Resource),
		roles:     make(map[string][]string),
	}
}

func (f *fakeBookingRepo) addResource(id string, restricted bool) {
	f.resources[id] = domain.Resource{
		ID:             id,
		ZoneID:         "zone-" + id,
		Kind:           domain.ResourceKindRoom,
		DisplayName:    id,
		ZoneRestricted: restricted,
	}
}

func (f *fakeBookingRepo) addBooking(resourceID string, start, end time.Time, status domain.BookingStatus) string {
	f.seq++
	id := "bk-" + strconv.Itoa(f.seq)
	f.bookings = append(f.bookings, storedBooking{
		booking: domain.Booking{
			ID:         id,
			ResourceID: resourceID,
			StartAt:    start,
			EndAt:      end,
			Status:     status,
		},
		statusID: bookingStatusIDs[status],
	})
	return id
}

func (f *fakeBookingRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	bookings := append([]storedBooking(nil), f.bookings...)
	approvals := append([]storedApproval(nil), f.approvals...)
	if err := fn(ctx); err != nil {
		f.bookings = bookings
		f.approvals = approvals
		return err
	}
	return nil
}

func (f *fakeBookingRepo) GetResourceForUpdate(_ context.Context, resourceID string) (domain.Resource, error) {
	res, ok := f.resources[resourceID]
	if !ok {
		return domain.Resource{}, domain.ErrResourceNotFound
	}
	return res, nil
}

func (f *fakeBookingRepo) HasActiveOverlap(_ context.Context, resourceID string, start, end time.Time) (bool, error) {
	for _, sb := range f.bookings {
		if sb.booking.ResourceID != resourceID {
			continue
		}
		status := bookingStatusByID(sb.statusID)
		if status == domain.BookingStatusCancelled || status == domain.BookingStatusRejected {
			continue
		}
		if sb.booking.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) LookupBookingStatus(_ context.Context, code domain.BookingStatus) (int, error) {
	id, ok := bookingStatusIDs[code]
	if !ok {
		return 0, domain.ErrStatusNotFound
	}
	return id, nil
}

func (f *fakeBookingRepo) LookupApprovalStatus(_ context.Context, code domain.ApprovalStatus) (int, error) {
	id, ok := approvalStatusIDs[code]
	if !ok {
		return 0, domain.ErrStatusNotFound
	}
	return id, nil
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking domain.Booking, statusID int) error {
	f.bookings = append(f.bookings, storedBooking{booking: booking, statusID: statusID})
	return nil
}

func (f *fakeBookingRepo) CreateApprovalRequest(_ context.Context, approval domain.ApprovalRequest, statusID int) error {
	f.approvals = append(f.approvals, storedApproval{req: approval, statusID: statusID})
	return nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(_ context.Context, bookingID string, statusID int, updatedAt time.Time) error {
	for i := range f.bookings {
		if f.bookings[i].booking.ID == bookingID {
			f.bookings[i].statusID = statusID
			f.bookings[i].booking.Status = bookingStatusByID(statusID)
			f.bookings[i].booking.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

func (f *fakeBookingRepo) ListRolesForUser(_ context.Context, userID string) ([]string, error) {
	return f.roles[userID], nil
}

func (f *fakeBookingRepo) ListApproverCandidates(_ context.Context, roleCode string) ([]string, error) {
	if roleCode != domain.RoleFacility {
		return nil, nil
	}
	return f.approvers, nil
}

func (f *fakeBookingRepo) ListBookingsInPeriod(_ context.Context, start, end time.Time) ([]domain.BookingSummary, error) {
	var out []domain.BookingSummary
	for _, sb := range f.bookings {
		if sb.booking.Overlaps(start, end) {
			out = append(out, domain.BookingSummary{
				ID:       sb.booking.ID,
				Resource: sb.booking.ResourceID,
				StartAt:  sb.booking.StartAt,
				EndAt:    sb.booking.EndAt,
				Status:   bookingStatusByID(sb.statusID),
			})
		}
	}
	return out, nil
}

// fakeApprovalRepo backs the decision processor tests.
type fakeApprovalRepo struct {
	approvals map[string]*storedApproval
	bookings  map[string]*storedBooking
	pending   []domain.PendingApproval
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{
		approvals: make(map[string]*storedApproval),
		bookings:  make(map[string]*storedBooking),
	}
}

func (f *fakeApprovalRepo) addPendingApproval(approvalID, bookingID string) {
	f.approvals[approvalID] = &storedApproval{
		req:      domain.ApprovalRequest{ID: approvalID, BookingID: bookingID, Status: domain.ApprovalStatusPending},
		statusID: approvalStatusIDs[domain.ApprovalStatusPending],
	}
	f.bookings[bookingID] = &storedBooking{
		booking:  domain.Booking{ID: bookingID, Status: domain.BookingStatusPending},
		statusID: bookingStatusIDs[domain.BookingStatusPending],
	}
}

func (f *fakeApprovalRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeApprovalRepo) LookupApprovalStatus(_ context.Context, code domain.ApprovalStatus) (int, error) {
	id, ok := approvalStatusIDs[code]
	if !ok {
		return 0, domain.ErrStatusNotFound
	}
	return id, nil
}

func (f *fakeApprovalRepo) LookupBookingStatus(_ context.Context, code domain.BookingStatus) (int, error) {
	id, ok := bookingStatusIDs[code]
	if !ok {
		return 0, domain.ErrStatusNotFound
	}
	return id, nil
}

func (f *fakeApprovalRepo) UpdateApprovalStatus(_ context.Context, approvalID string, statusID int, decidedAt time.Time) error {
	approval, ok := f.approvals[approvalID]
	if !ok {
		return domain.ErrApprovalNotFound
	}
	approval.statusID = statusID
	approval.req.DecidedAt = &decidedAt
	return nil
}

func (f *fakeApprovalRepo) GetApprovalBookingID(_ context.Context, approvalID string) (string, error) {
	approval, ok := f.approvals[approvalID]
	if !ok {
		return "", domain.ErrApprovalNotFound
	}
	return approval.req.BookingID, nil
}

func (f *fakeApprovalRepo) UpdateBookingStatus(_ context.Context, bookingID string, statusID int, updatedAt time.Time) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	booking.statusID = statusID
	booking.booking.UpdatedAt = updatedAt
	return nil
}

func (f *fakeApprovalRepo) ListPendingForApprover(_ context.Context, _ string) ([]domain.PendingApproval, error) {
	return append([]domain.PendingApproval(nil), f.pending...), nil
}
