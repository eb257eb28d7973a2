package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/akrudenko/OfficeBankIS/internal/report"
)

const defaultTopResources = 10

// ReportProvider is the minimal interface needed by the report
// endpoints.
type ReportProvider interface {
	DailyUtilization(ctx context.Context, start, end time.Time) ([]report.DayUtilization, error)
	TopResources(ctx context.Context, start, end time.Time, topN int) ([]report.ResourceMinutes, error)
}

// HandleUtilizationReport returns per-day occupancy for the period.
func HandleUtilizationReport(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		rows, err := svc.DailyUtilization(r.Context(), start, end)
		if err != nil {
			writeReportError(w, err)
			return
		}
		if rows == nil {
			rows = []report.DayUtilization{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// HandleTopResources returns the busiest resources for the period.
func HandleTopResources(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		topN := defaultTopResources
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid limit parameter")
				return
			}
			topN = n
		}

		rows, err := svc.TopResources(r.Context(), start, end, topN)
		if err != nil {
			writeReportError(w, err)
			return
		}
		if rows == nil {
			rows = []report.ResourceMinutes{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func writeReportError(w http.ResponseWriter, err error) {
	if err == domain.ErrInvalidInterval {
		writeError(w, http.StatusBadRequest, codeInvalidInterval, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
