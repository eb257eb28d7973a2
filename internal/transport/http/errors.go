package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidTime          = "invalid_time"
	codeInvalidID            = "invalid_id"
	codeInvalidInterval      = "invalid_interval"
	codeBookingConflict      = "booking_conflict"
	codeResourceNotFound     = "resource_not_found"
	codeUserNotFound         = "user_not_found"
	codeBookingNotFound      = "booking_not_found"
	codeApprovalNotFound     = "approval_not_found"
	codeStatusNotFound       = "status_not_found"
	codeNoApprover           = "no_approver"
	codeUserRequired         = "user_required"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
