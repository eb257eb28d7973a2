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

// ApprovalDecider is the minimal interface needed to decide approvals.
type ApprovalDecider interface {
	Decide(ctx context.Context, approvalID string, approve bool) (app.DecideResult, error)
}

// PendingApprovalLister is the minimal interface for the approver inbox.
type PendingApprovalLister interface {
	ListPending(ctx context.Context, approverID string) ([]domain.PendingApproval, error)
}

// HandleDecideApproval returns an HTTP handler applying an approver's
// decision.
func HandleDecideApproval(svc ApprovalDecider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		approvalID := chi.URLParam(r, "approvalID")

		var req decideApprovalRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Approve == nil {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "approve is required")
			return
		}

		result, err := svc.Decide(r.Context(), approvalID, *req.Approve)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrApprovalNotFound:
				writeError(w, http.StatusNotFound, codeApprovalNotFound, err.Error())
			case domain.ErrStatusNotFound:
				writeError(w, http.StatusUnprocessableEntity, codeStatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, decideApprovalResponse{
			ApprovalID: approvalID,
			BookingID:  result.BookingID,
			Status:     string(result.Status),
		})
	}
}

// HandleListPendingApprovals returns an HTTP handler for the approver's
// inbox. The approver defaults to the authenticated user.
func HandleListPendingApprovals(svc PendingApprovalLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		approverID := r.URL.Query().Get("approver_id")
		if approverID == "" {
			approverID = UserID(r.Context())
		}
		if approverID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "approver_id is required")
			return
		}

		pending, err := svc.ListPending(r.Context(), approverID)
		if err != nil {
			if err == domain.ErrInvalidID {
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		out := make([]pendingApprovalRow, 0, len(pending))
		for _, p := range pending {
			out = append(out, pendingApprovalRow{
				ID:          p.ID,
				BookingID:   p.BookingID,
				Resource:    p.Resource,
				StartAt:     p.StartAt,
				EndAt:       p.EndAt,
				RequestedBy: p.RequestedBy,
				Status:      string(p.Status),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type decideApprovalRequest struct {
	Approve *bool `json:"approve"`
}

type decideApprovalResponse struct {
	ApprovalID string `json:"approval_id"`
	BookingID  string `json:"booking_id"`
	Status     string `json:"status"`
}

type pendingApprovalRow struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	Resource    string    `json:"resource"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	RequestedBy string    `json:"requested_by"`
	Status      string    `json:"status"`
}
