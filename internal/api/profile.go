package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"
)

// GetProfile handles GET /api/v1/profile. The profile is created on first view.
func (h *Handlers) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		profile, err := h.deps.Services.Profile.GetOrCreate(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched successfully", dtos.NewProfileResponse(profile))
	}
}

// UpdateProfile handles PUT /api/v1/profile
func (h *Handlers) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.UpdateProfileRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		profile, err := h.deps.Services.Profile.Update(r.Context(), userID, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Profile updated", dtos.NewProfileResponse(profile))
	}
}

// TouchProfile handles POST /api/v1/profile/touch
func (h *Handlers) TouchProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		if _, err := h.deps.Services.Profile.GetOrCreate(r.Context(), userID); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		profile, err := h.deps.Services.Profile.Touch(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity recorded", dtos.NewProfileResponse(profile))
	}
}
