package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// ListAirports handles GET /api/v1/airports[?state=XX]
func (h *Handlers) ListAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		dir := h.deps.Services.Directory

		var (
			airports []models.Airport
			err      error
		)
		if state := r.URL.Query().Get("state"); state != "" {
			airports, err = dir.FilterByState(r.Context(), state)
		} else {
			airports, err = dir.ListOrderedByCode(r.Context())
		}
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Airports fetched successfully", dtos.NewAirportList(airports))
	}
}

// MyStateAirports handles GET /api/v1/airports/my-state
func (h *Handlers) MyStateAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		airports, err := h.deps.Services.Directory.ListForRequesterState(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Airports fetched successfully", dtos.NewAirportList(airports))
	}
}

// GetAirport handles GET /api/v1/airports/{icao}
func (h *Handlers) GetAirport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airport, err := h.deps.Services.Directory.FindByICAO(r.Context(), chi.URLParam(r, "icao"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Airport fetched successfully", dtos.NewAirportResponse(airport))
	}
}
