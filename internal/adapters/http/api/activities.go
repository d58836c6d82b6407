package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/mergington/pkg/logger"
)

// ActivitiesHandler serves the activity registry routes.
type ActivitiesHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, maxBodyBytes int64, l logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	all, err := h.deps.ListActivities(r.Context())
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleSignup handles POST /activities/{name}/signup?email=...
// The email travels in the query string, unlike unregister.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		h.fail(w, r, WrapKind(op, ErrInvalidRequest, errors.New("missing email query parameter")))
		return
	}

	conf, err := h.deps.Signup(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: conf.Message})
}

// HandleUnregister handles POST /activities/{name}/unregister with a JSON
// body {"participant": "<email>"}.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name := r.PathValue("name")

	var req unregisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		h.fail(w, r, WrapKind(op, ErrInvalidRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, r, WrapKind(op, ErrInvalidRequest, err))
		return
	}

	conf, err := h.deps.Unregister(r.Context(), name, req.Participant)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: conf.Message})
}

func (h *ActivitiesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, status, detail)
}
