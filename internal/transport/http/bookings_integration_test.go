package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akrudenko/OfficeBankIS/internal/app"
	"github.com/akrudenko/OfficeBankIS/internal/clock"
	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/akrudenko/OfficeBankIS/internal/storage/postgres"
	"github.com/akrudenko/OfficeBankIS/internal/testutil"
	"github.com/go-chi/chi/v5"
)

// Walks the whole restricted-zone flow over real storage: the employee's
// request lands PENDING with an approval assigned to the facility user,
// the approver sees it in the inbox, approves it, and the booking ends
// up APPROVED while the slot stays in conflict for everyone else.
func TestBookingApprovalFlow_HTTPIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	clk := clock.NewSystem()
	bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool), clk)
	approvalSvc := app.NewApprovalService(postgres.NewApprovalRepository(pool), clk)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	_, resourceID := testutil.InsertZoneAndResource(t, ctx, pool, "Server Room", true)
	employee := testutil.InsertUser(t, ctx, pool, "emp", domain.RoleEmployee)
	approver := testutil.InsertUser(t, ctx, pool, "fac", domain.RoleFacility)

	router := chi.NewRouter()
	router.Use(Identity)
	router.Post("/bookings", HandleCreateBooking(bookingSvc))
	router.Get("/approvals", HandleListPendingApprovals(approvalSvc))
	router.Post("/approvals/{approvalID}/decision", HandleDecideApproval(approvalSvc))

	body := `{"resource_id":"` + resourceID + `","start_at":"2025-03-10T10:00:00Z","end_at":"2025-03-10T11:00:00Z","title":"maintenance"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(userIDHeader, employee)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created createBookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != string(domain.BookingStatusPending) || !created.RequiresApproval {
		t.Fatalf("expected a pending booking requiring approval, got %+v", created)
	}

	// A second employee hits the conflict even though the first booking
	// is not approved yet.
	req = httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(userIDHeader, approver)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for overlapping request, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/approvals", nil)
	req.Header.Set(userIDHeader, approver)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var inbox []pendingApprovalRow
	if err := json.NewDecoder(rec.Body).Decode(&inbox); err != nil {
		t.Fatalf("decode inbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].BookingID != created.ID {
		t.Fatalf("expected the new booking in the inbox, got %+v", inbox)
	}

	req = httptest.NewRequest(http.MethodPost, "/approvals/"+inbox[0].ID+"/decision", strings.NewReader(`{"approve":true}`))
	req.Header.Set(userIDHeader, approver)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var decided decideApprovalResponse
	if err := json.NewDecoder(rec.Body).Decode(&decided); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decided.Status != string(domain.ApprovalStatusApproved) {
		t.Fatalf("expected APPROVED decision, got %+v", decided)
	}

	var bookingStatus string
	if err := pool.QueryRow(ctx, `
SELECT bs.code FROM bookings b
JOIN booking_statuses bs ON bs.id = b.booking_status_id
WHERE b.id = $1`, created.ID).Scan(&bookingStatus); err != nil {
		t.Fatalf("query booking status: %v", err)
	}
	if bookingStatus != string(domain.BookingStatusApproved) {
		t.Fatalf("expected booking APPROVED after decision, got %s", bookingStatus)
	}
}

// Cancelled bookings release their interval immediately.
func TestCancelBooking_HTTPIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	clk := clock.NewSystem()
	bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool), clk)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	_, resourceID := testutil.InsertZoneAndResource(t, ctx, pool, "Room A", false)
	alice := testutil.InsertUser(t, ctx, pool, "alice")
	bob := testutil.InsertUser(t, ctx, pool, "bob")

	router := chi.NewRouter()
	router.Use(Identity)
	router.Post("/bookings", HandleCreateBooking(bookingSvc))
	router.Post("/bookings/{bookingID}/cancel", HandleCancelBooking(bookingSvc))

	body := `{"resource_id":"` + resourceID + `","start_at":"2025-03-10T14:00:00Z","end_at":"2025-03-10T15:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(userIDHeader, alice)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created createBookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != string(domain.BookingStatusApproved) {
		t.Fatalf("expected auto-approved booking in open zone, got %s", created.Status)
	}

	req = httptest.NewRequest(http.MethodPost, "/bookings/"+created.ID+"/cancel", nil)
	req.Header.Set(userIDHeader, alice)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(userIDHeader, bob)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected freed slot to be bookable, got %d: %s", rec.Code, rec.Body.String())
	}
}
