package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yusufkecer/body-composition-backend/internal/metrics"
	"github.com/yusufkecer/body-composition-backend/internal/middleware"
)

const maxBodyBytes = 1 << 20

type RouterParams struct {
	JWTSecret      string
	APIKey         string
	AllowedOrigins string

	DB      Pinger
	Metrics *metrics.Manager
	// Gatherer backs /metrics; the route is skipped when nil.
	Gatherer prometheus.Gatherer

	Auth            *AuthHandler
	Profile         *ProfileHandler
	Measurements    *MeasurementHandler
	Workouts        *WorkoutHandler
	BodyComposition *BodyCompositionHandler

	LoginLimiter *middleware.RateLimiter
}

func NewRouter(p RouterParams) *mux.Router {
	if p.LoginLimiter == nil {
		p.LoginLimiter = middleware.NewRateLimiter(5, 15*time.Minute)
	}

	r := mux.NewRouter()
	r.Use(middleware.LogRequest)
	r.Use(middleware.PanicRecovery(p.Metrics))
	r.Use(middleware.CORSMiddleware(p.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBytes(maxBodyBytes))
	if p.Metrics != nil {
		r.Use(middleware.RequestMetrics(p.Metrics))
	}

	r.HandleFunc("/api/v1/health", Health(p.DB)).Methods(http.MethodGet, http.MethodOptions)
	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware(p.APIKey))

	api.HandleFunc("/auth/register", p.Auth.Register).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", p.LoginLimiter.Middleware(http.HandlerFunc(p.Auth.Login))).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(p.JWTSecret))

	protected.HandleFunc("/profile", p.Profile.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/profile", p.Profile.Patch).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/measurements", p.Measurements.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/measurements", p.Measurements.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/measurements/{id:[0-9]+}", p.Measurements.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/workouts", p.Workouts.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/workouts", p.Workouts.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/body-composition", p.BodyComposition.Get).Methods(http.MethodGet, http.MethodOptions)

	return r
}
