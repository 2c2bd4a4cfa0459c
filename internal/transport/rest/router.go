package rest

import (
	"net/http"
	"os"
	"teamhealth/internal/service"
	"teamhealth/internal/transport/rest/handler"
	"teamhealth/internal/transport/rest/middleware"
	"teamhealth/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	OrganizationService *service.OrganizationService
	AssessmentService   *service.AssessmentService
	SubmissionService   *service.SubmissionService
	ReportService       *service.ReportService
	ExportService       *service.ExportService
	NotificationService *service.NotificationService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService, logger)
	orgHandler := handler.NewOrganizationHandler(c.OrganizationService, c.AssessmentService, c.ReportService, c.NotificationService, logger)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.ReportService, c.ExportService, c.NotificationService, logger)
	participantHandler := handler.NewParticipantHandler(c.SubmissionService, logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, logger)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.HandleFunc("/swagger/doc.json", swaggerDoc(logger)).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes; participants authenticate with their code
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", participantHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/participants/{code}", participantHandler.Status).Methods("GET", "OPTIONS")
	v1.HandleFunc("/participants/{code}/responses", participantHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/assessments/{id}", wsHandler.AssessmentWS).Methods("GET")
	v1.HandleFunc("/ws/organizations/{id}", wsHandler.OrganizationWS).Methods("GET")

	admin := v1.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	admin.HandleFunc("/organizations", orgHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/organizations", orgHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/organizations/{id}", orgHandler.Get).Methods("GET", "OPTIONS")
	admin.HandleFunc("/organizations/{id}", orgHandler.Update).Methods("PATCH", "OPTIONS")
	admin.HandleFunc("/organizations/{id}", orgHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/organizations/{id}/assessments", orgHandler.Assessments).Methods("GET", "OPTIONS")
	admin.HandleFunc("/organizations/{id}/summary", orgHandler.GenerateSummary).Methods("POST", "OPTIONS")
	admin.HandleFunc("/organizations/{id}/summary", orgHandler.GetSummary).Methods("GET", "OPTIONS")
	admin.HandleFunc("/organizations/{id}/summary/email", orgHandler.EmailSummary).Methods("POST", "OPTIONS")
	admin.HandleFunc("/organizations/{id}/ranking", orgHandler.Ranking).Methods("GET", "OPTIONS")

	admin.HandleFunc("/assessments", assessmentHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/assessments/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/close", assessmentHandler.Close).Methods("POST", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/participants", assessmentHandler.ListParticipants).Methods("GET", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/participants", assessmentHandler.AddParticipants).Methods("POST", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/report", assessmentHandler.GenerateReport).Methods("POST", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/report", assessmentHandler.GetReport).Methods("GET", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/trust-matrix", assessmentHandler.TrustMatrix).Methods("GET", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/export", assessmentHandler.Export).Methods("GET", "OPTIONS")
	admin.HandleFunc("/assessments/{id}/invitations", assessmentHandler.SendInvitations).Methods("POST", "OPTIONS")

	return r
}

// swaggerDoc serves whatever API document the docs package registered.
func swaggerDoc(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Warn("swagger doc unavailable", zap.Error(err))
			http.Error(w, `{"error":"api docs not registered"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
