package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"
)

// ListUpcomingEvents handles GET /api/v1/events
func (h *Handlers) ListUpcomingEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		events, err := h.deps.Services.Event.ListUpcoming(r.Context(), initTime.UTC())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Events fetched successfully", dtos.NewEventList(events))
	}
}

// GetEvent handles GET /api/v1/events/{event_id}
func (h *Handlers) GetEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		eventID, ok := pathID(w, r, initTime, "event_id")
		if !ok {
			return
		}

		event, err := h.deps.Services.Event.Get(r.Context(), eventID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event fetched successfully", dtos.NewEventResponse(event))
	}
}

// HostedEvents handles GET /api/v1/events/hosted
func (h *Handlers) HostedEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		events, err := h.deps.Services.Event.ListHostedBy(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Events fetched successfully", dtos.NewEventList(events))
	}
}

// NearbyEvents handles GET /api/v1/events/nearby?scope=
func (h *Handlers) NearbyEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		events, err := h.deps.Services.Matching.NearbyEvents(r.Context(), userID, r.URL.Query().Get("scope"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Events fetched successfully", dtos.NewEventList(events))
	}
}

// CreateEvent handles POST /api/v1/events
func (h *Handlers) CreateEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.EventRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		event, err := h.deps.Services.Event.Create(r.Context(), userID, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event created", dtos.NewEventResponse(event), http.StatusCreated)
	}
}

// UpdateEvent handles PUT /api/v1/events/{event_id}
func (h *Handlers) UpdateEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}
		eventID, ok := pathID(w, r, initTime, "event_id")
		if !ok {
			return
		}

		var req dtos.EventRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		event, err := h.deps.Services.Event.Update(r.Context(), eventID, req, userID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event updated", dtos.NewEventResponse(event))
	}
}

// DeleteEvent handles DELETE /api/v1/events/{event_id}
func (h *Handlers) DeleteEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}
		eventID, ok := pathID(w, r, initTime, "event_id")
		if !ok {
			return
		}

		if err := h.deps.Services.Event.Delete(r.Context(), eventID, userID); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event deleted", nil)
	}
}
