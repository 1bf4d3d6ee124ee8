package http

import (
	"net/http"

	"clinical-study/internal/delivery/http/handler"
	"clinical-study/internal/delivery/http/middleware"
	"clinical-study/internal/domain/entity"
	"clinical-study/internal/infrastructure/metrics"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router               *mux.Router
	log                  *logrus.Logger
	metrics              *metrics.Metrics
	authHandler          *handler.AuthHandler
	patientHandler       *handler.PatientHandler
	questionnaireHandler *handler.QuestionnaireHandler
	exportHandler        *handler.ExportHandler
	healthHandler        *handler.HealthHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	collector *metrics.Metrics,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	questionnaireHandler *handler.QuestionnaireHandler,
	exportHandler *handler.ExportHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		log:                  log,
		metrics:              collector,
		authHandler:          authHandler,
		patientHandler:       patientHandler,
		questionnaireHandler: questionnaireHandler,
		exportHandler:        exportHandler,
		healthHandler:        healthHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.Metrics(r.metrics))

	// Operational endpoints
	r.router.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Auth routes (public)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	session := api.NewRoute().Subrouter()
	session.Use(r.authMiddleware.Authenticate)
	session.Use(middleware.RequireSession)
	session.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Study data routes
	data := api.NewRoute().Subrouter()
	data.Use(r.authMiddleware.Authenticate)

	data.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	data.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	data.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	data.HandleFunc("/stats", r.patientHandler.GetStats).Methods(http.MethodGet)

	data.HandleFunc("/stammdaten", r.questionnaireHandler.Submit(entity.QuestionnaireBaseline)).Methods(http.MethodPost)
	data.HandleFunc("/exposition", r.questionnaireHandler.Submit(entity.QuestionnaireExposure)).Methods(http.MethodPost)
	data.HandleFunc("/followup", r.questionnaireHandler.Submit(entity.QuestionnaireFollowUp)).Methods(http.MethodPost)

	data.HandleFunc("/export/csv", r.exportHandler.DownloadCSV).Methods(http.MethodGet)
	data.HandleFunc("/export/variables", r.exportHandler.DownloadVariables).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never reach route matching
	var h http.Handler = r.corsMiddleware.Handle(r.router)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(r.log), handlers.PrintRecoveryStack(true))(h)
	return middleware.Logging(r.log)(h)
}
