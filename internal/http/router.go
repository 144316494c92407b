package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flower-backend/internal/handlers"
	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/monitoring"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	farmerHandler *handlers.FarmerHandler,
	masterDataHandler *handlers.MasterDataHandler,
	entryHandler *handlers.EntryHandler,
	advanceHandler *handlers.AdvanceHandler,
	settlementHandler *handlers.SettlementHandler,
	reportHandler *handlers.ReportHandler,
	auditHandler *handlers.AuditHandler,
	paymentHandler *handlers.PaymentHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	dashboardHub *monitoring.DashboardHub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	admin := authMiddleware.RequireRole(models.RoleAdmin)
	staff := authMiddleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/webhooks/razorpay", paymentHandler.Webhook).Methods("POST")

	// Session
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Handle("/signup", admin(http.HandlerFunc(authHandler.Signup))).Methods("POST")
	authAPI.Handle("/me", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Me))).Methods("GET")
	authAPI.Handle("/totp/setup", authMiddleware.Authenticate(http.HandlerFunc(totpHandler.Setup))).Methods("POST")
	authAPI.Handle("/totp/verify", authMiddleware.Authenticate(http.HandlerFunc(totpHandler.Verify))).Methods("POST")

	// Farmers
	farmersAPI := r.PathPrefix("/api/farmers").Subrouter()
	farmersAPI.Use(staff)
	farmersAPI.HandleFunc("", farmerHandler.List).Methods("GET")
	farmersAPI.HandleFunc("", farmerHandler.Create).Methods("POST")
	farmersAPI.HandleFunc("/{id}", farmerHandler.Get).Methods("GET")
	farmersAPI.HandleFunc("/{id}", farmerHandler.Update).Methods("PUT")
	farmersAPI.Handle("/{id}", admin(http.HandlerFunc(farmerHandler.Delete))).Methods("DELETE")
	farmersAPI.HandleFunc("/{id}/ledger", farmerHandler.Ledger).Methods("GET")
	farmersAPI.HandleFunc("/{id}/notifications", farmerHandler.NotificationHistory).Methods("GET")

	// Master data
	flowerTypesAPI := r.PathPrefix("/api/flower-types").Subrouter()
	flowerTypesAPI.Use(staff)
	flowerTypesAPI.HandleFunc("", masterDataHandler.ListFlowerTypes).Methods("GET")
	flowerTypesAPI.Handle("", admin(http.HandlerFunc(masterDataHandler.CreateFlowerType))).Methods("POST")
	flowerTypesAPI.Handle("/{id}", admin(http.HandlerFunc(masterDataHandler.DeleteFlowerType))).Methods("DELETE")

	timeSlotsAPI := r.PathPrefix("/api/time-slots").Subrouter()
	timeSlotsAPI.Use(staff)
	timeSlotsAPI.HandleFunc("", masterDataHandler.ListTimeSlots).Methods("GET")
	timeSlotsAPI.Handle("", admin(http.HandlerFunc(masterDataHandler.CreateTimeSlot))).Methods("POST")

	ratesAPI := r.PathPrefix("/api/market-rates").Subrouter()
	ratesAPI.Use(staff)
	ratesAPI.HandleFunc("", masterDataHandler.ListRates).Methods("GET")
	ratesAPI.Handle("", admin(http.HandlerFunc(masterDataHandler.CreateRate))).Methods("POST")

	// Daily entries
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.Use(staff)
	entriesAPI.HandleFunc("", entryHandler.List).Methods("GET")
	entriesAPI.HandleFunc("", entryHandler.Create).Methods("POST")
	entriesAPI.HandleFunc("/bulk", entryHandler.BulkCreate).Methods("POST")
	entriesAPI.HandleFunc("/{id}", entryHandler.Get).Methods("GET")
	entriesAPI.HandleFunc("/{id}", entryHandler.Update).Methods("PUT")
	entriesAPI.HandleFunc("/{id}", entryHandler.Delete).Methods("DELETE")

	// Cash advances; approval and rejection are admin transitions.
	advancesAPI := r.PathPrefix("/api/advances").Subrouter()
	advancesAPI.Use(staff)
	advancesAPI.HandleFunc("", advanceHandler.List).Methods("GET")
	advancesAPI.HandleFunc("", advanceHandler.Create).Methods("POST")
	advancesAPI.HandleFunc("/{id}", advanceHandler.Get).Methods("GET")
	advancesAPI.HandleFunc("/{id}", advanceHandler.Update).Methods("PUT")
	advancesAPI.HandleFunc("/{id}", advanceHandler.Delete).Methods("DELETE")
	advancesAPI.Handle("/{id}/approve", admin(http.HandlerFunc(advanceHandler.Approve))).Methods("POST")
	advancesAPI.Handle("/{id}/reject", admin(http.HandlerFunc(advanceHandler.Reject))).Methods("POST")

	// Settlements; approve and pay are admin transitions.
	settlementsAPI := r.PathPrefix("/api/settlements").Subrouter()
	settlementsAPI.Use(staff)
	settlementsAPI.HandleFunc("", settlementHandler.List).Methods("GET")
	settlementsAPI.HandleFunc("/generate", settlementHandler.Generate).Methods("POST")
	settlementsAPI.HandleFunc("/{id}", settlementHandler.Get).Methods("GET")
	settlementsAPI.HandleFunc("/{id}", settlementHandler.Delete).Methods("DELETE")
	settlementsAPI.HandleFunc("/{id}/submit", settlementHandler.Submit).Methods("POST")
	settlementsAPI.Handle("/{id}/approve", admin(http.HandlerFunc(settlementHandler.Approve))).Methods("POST")
	settlementsAPI.Handle("/{id}/pay", admin(http.HandlerFunc(settlementHandler.Pay))).Methods("POST")
	settlementsAPI.HandleFunc("/{id}/pdf", settlementHandler.Statement).Methods("GET")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(staff)
	reportsAPI.HandleFunc("/settlements.xlsx", reportHandler.SettlementRegister).Methods("GET")

	// Audit trail
	r.Handle("/api/audit-logs", admin(http.HandlerFunc(auditHandler.History))).Methods("GET")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Handle("/dues-link", admin(http.HandlerFunc(paymentHandler.CreateDuesLink))).Methods("POST")

	// Live dashboard
	r.HandleFunc("/ws/dashboard", dashboardHub.HandleWebSocket)

	return r
}
