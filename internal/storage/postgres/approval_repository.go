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

type ApprovalRepository struct {
	pool *pgxpool.Pool
}

func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

func (r *ApprovalRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ApprovalRepository) LookupApprovalStatus(ctx context.Context, code domain.ApprovalStatus) (int, error) {
	return r.lookupStatus(ctx, "approval_statuses", string(code))
}

func (r *ApprovalRepository) LookupBookingStatus(ctx context.Context, code domain.BookingStatus) (int, error) {
	return r.lookupStatus(ctx, "booking_statuses", string(code))
}

func (r *ApprovalRepository) lookupStatus(ctx context.Context, table, code string) (int, error) {
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

// UpdateApprovalStatus applies a decision unconditionally; deciding an
// already-decided request overwrites the previous decision.
func (r *ApprovalRepository) UpdateApprovalStatus(ctx context.Context, approvalID string, statusID int, decidedAt time.Time) error {
	const stmt = `UPDATE booking_approvals SET approval_status_id = $2, decided_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, approvalID, statusID, decidedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update approval status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApprovalNotFound
	}
	return nil
}

func (r *ApprovalRepository) GetApprovalBookingID(ctx context.Context, approvalID string) (string, error) {
	const query = `SELECT booking_id FROM booking_approvals WHERE id = $1`

	var bookingID string
	if err := r.queryRow(ctx, query, approvalID).Scan(&bookingID); err != nil {
		if isInvalidUUID(err) {
			return "", domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return "", domain.ErrApprovalNotFound
		}
		return "", fmt.Errorf("get approval booking: %w", err)
	}
	return bookingID, nil
}

func (r *ApprovalRepository) UpdateBookingStatus(ctx context.Context, bookingID string, statusID int, updatedAt time.Time) error {
	const stmt = `UPDATE bookings SET booking_status_id = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, statusID, updatedAt)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// ListPendingForApprover returns the approver's inbox, ordered by the
// booked interval's start.
func (r *ApprovalRepository) ListPendingForApprover(ctx context.Context, approverID string) ([]domain.PendingApproval, error) {
	const query = `
SELECT a.id, a.booking_id, res.display_name, b.start_at, b.end_at, u.login, aps.code
FROM booking_approvals a
JOIN bookings b ON b.id = a.booking_id
JOIN resources res ON res.id = b.resource_id
JOIN users u ON u.id = b.requested_by
JOIN approval_statuses aps ON aps.id = a.approval_status_id
WHERE a.approver_id = $1 AND aps.code = 'PENDING'
ORDER BY b.start_at`

	rows, err := r.query(ctx, query, approverID)
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	defer rows.Close()

	var out []domain.PendingApproval
	for rows.Next() {
		var p domain.PendingApproval
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Resource, &p.StartAt, &p.EndAt, &p.RequestedBy, &p.Status); err != nil {
			return nil, fmt.Errorf("scan pending approval: %w", err)
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate pending approvals: %w", rows.Err())
	}
	return out, nil
}

func (r *ApprovalRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ApprovalRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ApprovalRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
