package matching

import (
	"fmt"
	"strings"

	"pilotconnect/internal/apperrors"
	models "pilotconnect/internal/models/gorm"
)

// Scope narrows a query geographically
type Scope string

const (
	ScopeGlobal      Scope = "global"
	ScopeState       Scope = "state"
	ScopeHomeAirport Scope = "home-airport"
)

// ParseScope accepts the scope names; an empty string means global
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeState:
		return ScopeState, nil
	case ScopeHomeAirport, "airport":
		return ScopeHomeAirport, nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// Requester is the acting pilot a query is evaluated for
type Requester struct {
	UserID      uint
	HomeAirport *models.Airport
}

// NewRequester builds a requester from a loaded profile
func NewRequester(profile *models.PilotProfile) Requester {
	return Requester{UserID: profile.UserID, HomeAirport: profile.HomeAirport}
}

// check fails with ErrHomeAirportRequired when a narrowing scope has nothing to narrow by
func (s Scope) check(r Requester) error {
	if s != ScopeGlobal && r.HomeAirport == nil {
		return apperrors.ErrHomeAirportRequired
	}
	return nil
}
