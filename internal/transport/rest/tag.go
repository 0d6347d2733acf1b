package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

// tagService defines the minimal interface needed by TagHandler.
type tagService interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, skip, limit int) ([]domain.Tag, error)
}

// TagHandler serves tag REST endpoints.
type TagHandler struct {
	svc tagService
	log *slog.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(svc tagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: logger.With("handler", "tag")}
}

type createTagRequest struct {
	Name string `json:"name"`
}

// Create handles POST /tags/.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "Tag already exists")
		default:
			h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toTagView(*tag))
}

// List handles GET /tags/?skip=&limit=.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	tags, err := h.svc.List(r.Context(), queryInt(r, "skip"), queryInt(r, "limit"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toTagViews(tags))
}
