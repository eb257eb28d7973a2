package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryRepository serves the read-only views: the resource
// directory and the report snapshot. Reads run outside any transaction.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

func (r *DirectoryRepository) ListResources(ctx context.Context) ([]domain.ResourceInfo, error) {
	const query = `
SELECT res.id, res.kind, res.display_name, z.name, z.floor_no, res.capacity, res.is_hot_desk
FROM resources res
JOIN zones z ON z.id = res.zone_id
ORDER BY res.kind, z.floor_no, res.display_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var out []domain.ResourceInfo
	for rows.Next() {
		var info domain.ResourceInfo
		if err := rows.Scan(&info.ID, &info.Kind, &info.DisplayName, &info.Zone, &info.FloorNo, &info.Capacity, &info.IsHotDesk); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, info)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate resources: %w", rows.Err())
	}
	return out, nil
}

// FetchActiveBookingsInPeriod returns the PENDING/APPROVED bookings
// intersecting [start, end), the snapshot the reports reduce over.
func (r *DirectoryRepository) FetchActiveBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error) {
	const query = `
SELECT b.id, res.display_name, res.kind, z.name, b.start_at, b.end_at, bs.code, u.login
FROM bookings b
JOIN resources res ON res.id = b.resource_id
JOIN zones z ON z.id = res.zone_id
JOIN booking_statuses bs ON bs.id = b.booking_status_id
JOIN users u ON u.id = b.requested_by
WHERE b.start_at < $2 AND b.end_at > $1
  AND bs.code IN ('APPROVED', 'PENDING')
ORDER BY b.start_at`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	defer rows.Close()

	return scanBookingSummaries(rows)
}
