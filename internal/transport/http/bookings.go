package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/app"
	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/go-chi/chi/v5"
)

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (app.CreateBookingResult, error)
}

// BookingCanceller is the minimal interface needed to cancel a booking.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, bookingID string) error
}

// BookingLister is the minimal interface needed to list bookings.
type BookingLister interface {
	ListBookingsInPeriod(ctx context.Context, start, end time.Time) ([]domain.BookingSummary, error)
}

// HandleCreateBooking returns an HTTP handler for creating bookings.
func HandleCreateBooking(svc BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedBy := UserID(r.Context())
		if requestedBy == "" {
			writeError(w, http.StatusUnauthorized, codeUserRequired, "missing "+userIDHeader+" header")
			return
		}

		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ResourceID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "resource_id is required")
			return
		}
		if req.StartAt.IsZero() || req.EndAt.IsZero() {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "start_at and end_at are required")
			return
		}

		result, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			ResourceID:   req.ResourceID,
			RequestedBy:  requestedBy,
			StartAt:      req.StartAt,
			EndAt:        req.EndAt,
			Title:        req.Title,
			Notes:        req.Notes,
			Participants: req.Participants,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidInterval:
				writeError(w, http.StatusBadRequest, codeInvalidInterval, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrResourceNotFound:
				writeError(w, http.StatusNotFound, codeResourceNotFound, err.Error())
			case domain.ErrUserNotFound:
				writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
			case domain.ErrBookingConflict:
				writeError(w, http.StatusConflict, codeBookingConflict, err.Error())
			case domain.ErrNoApprover:
				writeError(w, http.StatusUnprocessableEntity, codeNoApprover, err.Error())
			case domain.ErrStatusNotFound:
				writeError(w, http.StatusUnprocessableEntity, codeStatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, createBookingResponse{
			ID:               result.Booking.ID,
			Status:           string(result.Booking.Status),
			RequiresApproval: result.RequiresApproval,
			Message:          result.Message,
			StartAt:          result.Booking.StartAt,
			EndAt:            result.Booking.EndAt,
		})
	}
}

// HandleCancelBooking returns an HTTP handler for cancelling bookings.
func HandleCancelBooking(svc BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := chi.URLParam(r, "bookingID")

		if err := svc.CancelBooking(r.Context(), bookingID); err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrBookingNotFound:
				writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, cancelBookingResponse{
			ID:     bookingID,
			Status: string(domain.BookingStatusCancelled),
		})
	}
}

// HandleListBookings returns an HTTP handler for the period listing.
func HandleListBookings(svc BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		bookings, err := svc.ListBookingsInPeriod(r.Context(), start, end)
		if err != nil {
			switch err {
			case domain.ErrInvalidInterval:
				writeError(w, http.StatusBadRequest, codeInvalidInterval, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		out := make([]bookingRow, 0, len(bookings))
		for _, b := range bookings {
			out = append(out, bookingRow{
				ID:          b.ID,
				Resource:    b.Resource,
				Kind:        string(b.Kind),
				Zone:        b.Zone,
				StartAt:     b.StartAt,
				EndAt:       b.EndAt,
				Status:      string(b.Status),
				RequestedBy: b.RequestedBy,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parsePeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	start, err := parseTimeParam(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTime, "invalid or missing from parameter")
		return time.Time{}, time.Time{}, false
	}
	end, err := parseTimeParam(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTime, "invalid or missing to parameter")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates.
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

type createBookingRequest struct {
	ResourceID   string    `json:"resource_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	Participants *int      `json:"participants"`
}

type createBookingResponse struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	RequiresApproval bool      `json:"requires_approval"`
	Message          string    `json:"message"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
}

type cancelBookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type bookingRow struct {
	ID          string    `json:"id"`
	Resource    string    `json:"resource"`
	Kind        string    `json:"kind"`
	Zone        string    `json:"zone"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requested_by"`
}
