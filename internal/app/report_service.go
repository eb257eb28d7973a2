package app

import (
	"context"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/akrudenko/OfficeBankIS/internal/report"
)

type ReportRepository interface {
	FetchActiveBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error)
}

// ReportService feeds active-booking snapshots into the pure report
// reductions. Reads are snapshot-consistent, never locked.
type ReportService struct {
	repo             ReportRepository
	workdayStartHour int
	workdayEndHour   int
}

func NewReportService(repo ReportRepository, workdayStartHour, workdayEndHour int) *ReportService {
	return &ReportService{
		repo:             repo,
		workdayStartHour: workdayStartHour,
		workdayEndHour:   workdayEndHour,
	}
}

func (s *ReportService) DailyUtilization(ctx context.Context, start, end time.Time) ([]report.DayUtilization, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidInterval
	}
	bookings, err := s.repo.FetchActiveBookingsInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return report.DailyUtilization(bookings, start, end, s.workdayStartHour, s.workdayEndHour), nil
}

func (s *ReportService) TopResources(ctx context.Context, start, end time.Time, topN int) ([]report.ResourceMinutes, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidInterval
	}
	bookings, err := s.repo.FetchActiveBookingsInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return report.TopResources(bookings, topN), nil
}
