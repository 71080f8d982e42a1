package http

import (
	"net/http"

	"github.com/healthfirst/scheduling-service/internal/delivery/http/handler"
	"github.com/healthfirst/scheduling-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	slotHandler         *handler.SlotHandler
	appointmentHandler  *handler.AppointmentHandler
	visitTypeHandler    *handler.VisitTypeHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	visitTypeHandler *handler.VisitTypeHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		slotHandler:         slotHandler,
		appointmentHandler:  appointmentHandler,
		visitTypeHandler:    visitTypeHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Slot discovery (protected, any authenticated role)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/providers/{providerId}/slots", r.slotHandler.ListAvailable).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/availability", r.availabilityHandler.GetProviderPatterns).Methods(http.MethodGet)
	protected.HandleFunc("/visit-types", r.visitTypeHandler.List).Methods(http.MethodGet)

	// Appointments (protected)
	protected.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.Query).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.Confirm).Methods(http.MethodPost)

	// Lifecycle transitions driven by clinic staff
	staff := api.PathPrefix("/appointments").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireAdminOrProvider)
	staff.HandleFunc("/{id}/check-in", r.appointmentHandler.CheckIn).Methods(http.MethodPost)
	staff.HandleFunc("/{id}/start", r.appointmentHandler.StartExam).Methods(http.MethodPost)
	staff.HandleFunc("/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)
	staff.HandleFunc("/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)

	// Calendar management (provider or admin)
	calendar := api.PathPrefix("").Subrouter()
	calendar.Use(r.authMiddleware.Authenticate)
	calendar.Use(middleware.RequireAdminOrProvider)
	calendar.HandleFunc("/availability", r.availabilityHandler.CreatePattern).Methods(http.MethodPost)
	calendar.HandleFunc("/availability/bulk", r.availabilityHandler.BulkReplace).Methods(http.MethodPut)
	calendar.HandleFunc("/availability/{id}", r.availabilityHandler.DeletePattern).Methods(http.MethodDelete)
	calendar.HandleFunc("/providers/{providerId}/slots/materialize", r.slotHandler.Materialize).Methods(http.MethodPost)
	calendar.HandleFunc("/slots/{id}/block", r.slotHandler.Block).Methods(http.MethodPost)
	calendar.HandleFunc("/slots/{id}/unblock", r.slotHandler.Unblock).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/visit-types", r.visitTypeHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/visit-types/{id}", r.visitTypeHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
