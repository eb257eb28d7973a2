package http

import (
	"log"
	"net/http"

	"github.com/akrudenko/OfficeBankIS/internal/app"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	Bookings  *app.BookingService
	Approvals *app.ApprovalService
	Reports   *app.ReportService
	Directory *app.DirectoryService

	Logger      *log.Logger
	CORSOrigins []string
}

// NewRouter wires the API surface over the services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return RequestLogger(next, deps.Logger)
	})
	r.Use(func(next http.Handler) http.Handler {
		return CORS(deps.CORSOrigins, next)
	})
	r.Use(Identity)

	r.Get("/health", HealthHandler)

	r.Post("/bookings", HandleCreateBooking(deps.Bookings))
	r.Get("/bookings", HandleListBookings(deps.Bookings))
	r.Post("/bookings/{bookingID}/cancel", HandleCancelBooking(deps.Bookings))

	r.Get("/approvals", HandleListPendingApprovals(deps.Approvals))
	r.Post("/approvals/{approvalID}/decision", HandleDecideApproval(deps.Approvals))

	r.Get("/resources", HandleListResources(deps.Directory))

	r.Get("/reports/utilization", HandleUtilizationReport(deps.Reports))
	r.Get("/reports/top-resources", HandleTopResources(deps.Reports))

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
