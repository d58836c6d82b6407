// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListActivities(ctx context.Context) (model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (model.Confirmation, error)
	Unregister(ctx context.Context, activity, email string) (model.Confirmation, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler

	logger logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps JSON request bodies.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for access logs and 5xx reports.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("api")
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps, o.maxBodyBytes, o.logger),
		logger:            o.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /activities", s.route("activities", s.activitiesHandler.HandleList))
	mux.Handle("POST /activities/{name}/signup", s.route("signup", s.activitiesHandler.HandleSignup))
	mux.Handle("POST /activities/{name}/unregister", s.route("unregister", s.activitiesHandler.HandleUnregister))

	mux.Handle("GET /healthz", s.route("healthz", s.healthHandler.HandleHealth))
	mux.Handle("GET /stats", s.route("stats", s.statsHandler.HandleStats))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// route stacks the shared middleware around one handler.
func (s *Server) route(endpoint string, h http.HandlerFunc) http.Handler {
	return RequestIDMiddleware(AccessLogMiddleware(s.logger, MetricsMiddleware(h, endpoint)))
}

// unregisterRequest is the JSON body of POST /activities/{name}/unregister.
type unregisterRequest struct {
	Participant string `json:"participant"`
}

func (r unregisterRequest) validate() error {
	if strings.TrimSpace(r.Participant) == "" {
		return errors.New("missing participant")
	}
	return nil
}

// messageResponse is the success body of signup and unregister.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the failure body of every route.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusFor translates registry and boundary errors into an HTTP status and
// the client-facing detail text.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrActivityNotFound):
		return http.StatusNotFound, "Activity not found"
	case errors.Is(err, model.ErrAlreadySignedUp):
		return http.StatusBadRequest, "Student is already signed up"
	case errors.Is(err, model.ErrParticipantNotFound):
		return http.StatusBadRequest, "Participant not found in this activity"
	case errors.As(err, new(*http.MaxBytesError)):
		return http.StatusRequestEntityTooLarge, "Request body too large"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusUnprocessableEntity, invalidDetail(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// invalidDetail returns the underlying validation message without the
// operation prefix.
func invalidDetail(err error) string {
	var oe *opError
	if errors.As(err, &oe) && oe.err != nil {
		return oe.err.Error()
	}
	return ErrInvalidRequest.Error()
}
