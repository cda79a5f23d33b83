package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"campus-backend/internal/security"
	"campus-backend/internal/service"
)

// Server wires the HTTP routes to the services. Handlers only decode, call a
// service and encode; validation beyond basic shape checks lives elsewhere.
type Server struct {
	router       *mux.Router
	authSvc      service.AuthService
	approvalSvc  service.ApprovalService
	resetSvc     service.PasswordResetService
	noteSvc      service.NotificationService
	tokenManager security.TokenManager
}

func NewServer(
	authSvc service.AuthService,
	approvalSvc service.ApprovalService,
	resetSvc service.PasswordResetService,
	noteSvc service.NotificationService,
	tokenManager security.TokenManager,
) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		authSvc:      authSvc,
		approvalSvc:  approvalSvc,
		resetSvc:     resetSvc,
		noteSvc:      noteSvc,
		tokenManager: tokenManager,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset", s.handleRequestReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/verify", s.handleVerifyReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/complete", s.handleCompleteReset).Methods(http.MethodPost)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.authMiddleware, s.requireAdmin)
	admin.HandleFunc("/registrations", s.handleListPending).Methods(http.MethodGet)
	admin.HandleFunc("/registrations/{id:[0-9]+}/approve", s.handleApprove).Methods(http.MethodPost)
	admin.HandleFunc("/registrations/{id:[0-9]+}/reject", s.handleReject).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
