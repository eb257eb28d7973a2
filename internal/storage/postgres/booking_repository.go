package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetResourceForUpdate locks the resource row for the rest of the
// transaction, serializing concurrent bookings of the same resource.
func (r *BookingRepository) GetResourceForUpdate(ctx context.Context, resourceID string) (domain.Resource, error) {
	const query = `
SELECT r.id, r.zone_id, r.kind, r.display_name, z.is_restricted
FROM resources r
JOIN zones z ON z.id = r.zone_id
WHERE r.id = $1
FOR UPDATE OF r`

	var res domain.Resource
	err := r.queryRow(ctx, query, resourceID).
		Scan(&res.ID, &res.ZoneID, &res.Kind, &res.DisplayName, &res.ZoneRestricted)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Resource{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

// HasActiveOverlap reports whether any booking that still occupies the
// resource intersects the half-open interval [start, end).
func (r *BookingRepository) HasActiveOverlap(ctx context.Context, resourceID string, start, end time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM bookings b
	JOIN booking_statuses bs ON bs.id = b.booking_status_id
	WHERE b.resource_id = $1
	  AND bs.code NOT IN ('CANCELLED', 'REJECTED')
	  AND b.start_at < $3
	  AND b.end_at > $2
)`

	var exists bool
	if err := r.queryRow(ctx, query, resourceID, start, end).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return exists, nil
}

func (r *BookingRepository) LookupBookingStatus(ctx context.Context, code domain.BookingStatus) (int, error) {
	return r.lookupStatus(ctx, "booking_statuses", string(code))
}

func (r *BookingRepository) LookupApprovalStatus(ctx context.Context, code domain.ApprovalStatus) (int, error) {
	return r.lookupStatus(ctx, "approval_statuses", string(code))
}

func (r *BookingRepository) lookupStatus(ctx context.Context, table, code string) (int, error) {
	// table is one of the two fixed lookup-table names above.
	query := fmt.Sprintf(`SELECT id FROM %s WHERE code = $1`, table)
	var id int
	if err := r.queryRow(ctx, query, code).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrStatusNotFound
		}
		return 0, fmt.Errorf("lookup status %s: %w", code, err)
	}
	return id, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking, statusID int) error {
	const stmt = `
INSERT INTO bookings (id, resource_id, requested_by, start_at, end_at, title, notes, participants, booking_status_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $10)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.ResourceID,
		booking.RequestedBy,
		booking.StartAt,
		booking.EndAt,
		booking.Title,
		booking.Notes,
		booking.Participants,
		statusID,
		booking.CreatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrBookingConflict
		}
		if isForeignKeyViolation(err) {
			// The resource row is locked at this point, so the only
			// dangling reference left is the requester.
			return domain.ErrUserNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) CreateApprovalRequest(ctx context.Context, approval domain.ApprovalRequest, statusID int) error {
	const stmt = `
INSERT INTO booking_approvals (id, booking_id, approver_id, approval_status_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt,
		approval.ID,
		approval.BookingID,
		approval.ApproverID,
		statusID,
		approval.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create approval request: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, statusID int, updatedAt time.Time) error {
	const stmt = `UPDATE bookings SET booking_status_id = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, statusID, updatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListRolesForUser(ctx context.Context, userID string) ([]string, error) {
	const query = `
SELECT r.code
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
WHERE ur.user_id = $1`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		codes = append(codes, code)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate roles: %w", rows.Err())
	}
	return codes, nil
}

// ListApproverCandidates returns the ids of users holding the role,
// ordered by id so the policy's pick is deterministic.
func (r *BookingRepository) ListApproverCandidates(ctx context.Context, roleCode string) ([]string, error) {
	const query = `
SELECT ur.user_id
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
WHERE r.code = $1
ORDER BY ur.user_id`

	rows, err := r.query(ctx, query, roleCode)
	if err != nil {
		return nil, fmt.Errorf("list approver candidates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate candidates: %w", rows.Err())
	}
	return ids, nil
}

// ListBookingsInPeriod returns bookings of any status intersecting
// [start, end), ordered by start time.
func (r *BookingRepository) ListBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error) {
	const query = `
SELECT b.id, res.display_name, res.kind, z.name, b.start_at, b.end_at, bs.code, u.login
FROM bookings b
JOIN resources res ON res.id = b.resource_id
JOIN zones z ON z.id = res.zone_id
JOIN booking_statuses bs ON bs.id = b.booking_status_id
JOIN users u ON u.id = b.requested_by
WHERE b.start_at < $2 AND b.end_at > $1
ORDER BY b.start_at`

	rows, err := r.query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookingSummaries(rows)
}

func scanBookingSummaries(rows pgx.Rows) ([]domain.BookingSummary, error) {
	var out []domain.BookingSummary
	for rows.Next() {
		var b domain.BookingSummary
		if err := rows.Scan(&b.ID, &b.Resource, &b.Kind, &b.Zone, &b.StartAt, &b.EndAt, &b.Status, &b.RequestedBy); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return out, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
