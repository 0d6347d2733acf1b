// Package rest implements the HTTP API: JSON handlers over the user,
// activity and tag services.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// validationMessage extracts the user-facing message from a validation error.
func validationMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && len(vErr.Errors) > 0 {
		return vErr.Errors[0].Message
	}
	return "Invalid request"
}

// requireUser extracts the authenticated user from the context.
// Writes 401 and returns false when the request is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses the {id} path segment. Malformed IDs report ok=false so
// handlers can answer as if the resource did not exist.
func pathUUID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
