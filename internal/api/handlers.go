package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/auth"
	"pilotconnect/internal/common"
	"pilotconnect/internal/constants"
	reqctx "pilotconnect/internal/context"
	"pilotconnect/internal/logging"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// currentUser returns the authenticated user's id, writing a 401 when the
// request carries no claims
func currentUser(w http.ResponseWriter, r *http.Request, initTime time.Time) (uint, bool) {
	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
	}
	return id, ok
}

// pathID parses a numeric URL parameter, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, initTime time.Time, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		common.RespondError(w, initTime, nil, fmt.Sprintf("invalid %s", name), http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, initTime time.Time, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, initTime, nil, constants.MsgInvalidRequestBody, http.StatusBadRequest)
		return false
	}
	return true
}

// respondServiceError maps service error kinds onto HTTP statuses.
// Unclassified errors are logged and reported as a bare 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		common.RespondError(w, initTime, err, "", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrAuthorization):
		common.RespondError(w, initTime, nil, constants.MsgAccessDenied, http.StatusForbidden)
	case errors.Is(err, apperrors.ErrPrecondition):
		common.RespondError(w, initTime, nil, constants.MsgSetHomeAirportFirst, http.StatusPreconditionFailed)
	case errors.Is(err, apperrors.ErrUniqueness):
		common.RespondError(w, initTime, err, "", http.StatusConflict)
	case errors.Is(err, apperrors.ErrNotFound):
		common.RespondError(w, initTime, err, "", http.StatusNotFound)
	default:
		userID := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			userID = strconv.FormatUint(uint64(claims.UserID()), 10)
		}
		logging.WithRequest(reqctx.GetRequestID(r.Context()), userID, r.URL.Path).
			Errorw("Request failed", "error", err)
		common.RespondError(w, initTime, nil, constants.MsgInternalServerError, http.StatusInternalServerError)
	}
}
