package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/auth"
	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"
)

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		user, err := h.deps.Services.User.Register(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Registered", dtos.NewUserResponse(user), http.StatusCreated)
	}
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		token, err := h.deps.Services.User.Authenticate(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Logged in", token)
	}
}

// Logout handles POST /api/v1/auth/logout
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := h.deps.Services.User.Logout(r.Context(), claims); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}
