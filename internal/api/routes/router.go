package routes

import (
	"net/http"

	"github.com/sevacare/caregiver-match/internal/api/handlers"
	"github.com/sevacare/caregiver-match/internal/api/middleware"
	"github.com/sevacare/caregiver-match/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	matchHandler     *handlers.MatchHandler
	caregiverHandler *handlers.CaregiverHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	matchHandler *handlers.MatchHandler,
	caregiverHandler *handlers.CaregiverHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		matchHandler:     matchHandler,
		caregiverHandler: caregiverHandler,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Matching endpoints
	r.mux.HandleFunc("GET /api/match", r.matchHandler.Match)

	// Caregiver read endpoints
	r.mux.HandleFunc("GET /api/caregivers", r.caregiverHandler.ListCaregivers)
	r.mux.HandleFunc("GET /api/caregivers/{id}", r.caregiverHandler.GetCaregiver)

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/fallback-queries", r.matchHandler.GetFallbackQueries)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so every response carries the headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
