package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListPilots handles GET /api/v1/pilots?scope=global|state|home-airport
func (h *Handlers) ListPilots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		profiles, err := h.deps.Services.Matching.Directory(r.Context(), userID, r.URL.Query().Get("scope"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilots fetched successfully", dtos.NewProfileList(profiles))
	}
}

// GetPilot handles GET /api/v1/pilots/{user_id}
func (h *Handlers) GetPilot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		if _, ok := currentUser(w, r, initTime); !ok {
			return
		}
		pilotID, ok := pathID(w, r, initTime, "user_id")
		if !ok {
			return
		}

		profile, err := h.deps.Services.Profile.GetOrCreate(r.Context(), pilotID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot fetched successfully", dtos.NewProfileResponse(profile))
	}
}

// ListPredicates handles GET /api/v1/matches
func (h *Handlers) ListPredicates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		predicates := h.deps.Services.Matching.Predicates()
		out := make([]dtos.PredicateResponse, 0, len(predicates))
		for _, p := range predicates {
			caps := make([]string, 0, len(p.Capabilities))
			for _, c := range p.Capabilities {
				caps = append(caps, c.String())
			}
			out = append(out, dtos.PredicateResponse{Name: p.Name, Capabilities: caps})
		}

		common.RespondSuccess(w, initTime, "Predicates fetched successfully", out)
	}
}

// Match handles GET /api/v1/matches/{predicate}?scope=
func (h *Handlers) Match() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID, ok := currentUser(w, r, initTime)
		if !ok {
			return
		}

		profiles, predicate, scope, err := h.deps.Services.Matching.Match(
			r.Context(), userID, chi.URLParam(r, "predicate"), r.URL.Query().Get("scope"),
		)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Matches fetched successfully", dtos.MatchResponse{
			Predicate: predicate.Name,
			Scope:     string(scope),
			Pilots:    dtos.NewProfileList(profiles),
		})
	}
}
