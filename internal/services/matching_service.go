package services

import (
	"context"
	"fmt"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/matching"
	models "pilotconnect/internal/models/gorm"
)

// MatchingService resolves the acting user into a Requester and runs engine queries
type MatchingService struct {
	engine   *matching.Engine
	profiles *ProfileService
}

func NewMatchingService(engine *matching.Engine, profiles *ProfileService) *MatchingService {
	return &MatchingService{engine: engine, profiles: profiles}
}

// Match runs a named predicate at scope for userID
func (s *MatchingService) Match(ctx context.Context, userID uint, predicateName, scopeName string) ([]models.PilotProfile, matching.Predicate, matching.Scope, error) {
	predicate, err := matching.LookupPredicate(predicateName)
	if err != nil {
		return nil, matching.Predicate{}, "", fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, constants.MsgUnknownPredicate, predicateName)
	}
	scope, err := parseScope(scopeName)
	if err != nil {
		return nil, predicate, "", err
	}

	requester, err := s.requester(ctx, userID)
	if err != nil {
		return nil, predicate, scope, err
	}

	profiles, err := s.engine.MatchProfiles(ctx, requester, matching.Query{Predicate: predicate, Scope: scope})
	return profiles, predicate, scope, err
}

// Directory lists pilots at scope; the home-airport listing leaves out the requester
func (s *MatchingService) Directory(ctx context.Context, userID uint, scopeName string) ([]models.PilotProfile, error) {
	scope, err := parseScope(scopeName)
	if err != nil {
		return nil, err
	}

	requester, err := s.requester(ctx, userID)
	if err != nil {
		return nil, err
	}

	everyone, _ := matching.LookupPredicate(matching.Everyone)
	return s.engine.MatchProfiles(ctx, requester, matching.Query{
		Predicate:        everyone,
		Scope:            scope,
		ExcludeRequester: scope == matching.ScopeHomeAirport,
	})
}

// NearbyEvents lists events with an airport inside the requester's scope
func (s *MatchingService) NearbyEvents(ctx context.Context, userID uint, scopeName string) ([]models.PilotEvent, error) {
	scope, err := parseScope(scopeName)
	if err != nil {
		return nil, err
	}

	requester, err := s.requester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.MatchEvents(ctx, requester, scope)
}

// Predicates lists the named predicates Match accepts
func (s *MatchingService) Predicates() []matching.Predicate {
	return matching.Predicates()
}

func parseScope(name string) (matching.Scope, error) {
	scope, err := matching.ParseScope(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, constants.MsgUnknownScope)
	}
	return scope, nil
}

func (s *MatchingService) requester(ctx context.Context, userID uint) (matching.Requester, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return matching.Requester{}, err
	}
	return matching.NewRequester(profile), nil
}
