package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	activitysvc "github.com/plantracker/plantracker-backend/internal/service/activity"
)

// activityService defines the minimal interface needed by ActivityHandler.
type activityService interface {
	Create(ctx context.Context, input activitysvc.CreateInput) (*domain.Activity, error)
	List(ctx context.Context, input activitysvc.ListInput) ([]domain.Activity, error)
	Get(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error)
	Update(ctx context.Context, activityID uuid.UUID, params activitysvc.UpdateInput) (*domain.Activity, error)
	Delete(ctx context.Context, activityID uuid.UUID) error
	Timer(ctx context.Context, activityID uuid.UUID, action string) (*domain.Activity, error)
}

// ActivityHandler serves activity REST endpoints.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

type createActivityRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Duration      *int64     `json:"duration"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	Tags          []string   `json:"tags"`
}

type updateActivityRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EndTime       *time.Time `json:"end_time"`
	Duration      *int64     `json:"duration"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	Tags          []string   `json:"tags"`
}

type timerRequest struct {
	Action string `json:"action"`
}

// Create handles POST /activities/.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := h.svc.Create(r.Context(), activitysvc.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		ScheduledTime: req.ScheduledTime,
		Tags:          req.Tags,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityView(activity))
}

// List handles GET /activities/?skip=&limit=&tag=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	input := activitysvc.ListInput{
		Skip:  queryInt(r, "skip"),
		Limit: queryInt(r, "limit"),
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		input.Tag = &tag
	}

	activities, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityViews(activities))
}

// Get handles GET /activities/{id}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathUUID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}

	activity, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityView(activity))
}

// Update handles PUT /activities/{id}.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathUUID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}

	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := h.svc.Update(r.Context(), id, activitysvc.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		ScheduledTime: req.ScheduledTime,
		Tags:          req.Tags,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityView(activity))
}

// Delete handles DELETE /activities/{id}.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathUUID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Activity deleted successfully",
	})
}

// Timer handles POST /activities/{id}/timer.
func (h *ActivityHandler) Timer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, ok := pathUUID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}

	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := h.svc.Timer(r.Context(), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAction):
			writeError(w, http.StatusBadRequest, "Invalid timer action")
		case errors.Is(err, domain.ErrTimerNotRunning):
			writeError(w, http.StatusBadRequest, "Timer not running")
		default:
			h.handleError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toActivityView(activity))
}

func (h *ActivityHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryInt parses a non-negative integer query parameter; absent or invalid
// values yield zero.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
