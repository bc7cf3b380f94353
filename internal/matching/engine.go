package matching

import (
	"context"
	"fmt"

	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

// Observer is told about every query the engine runs
type Observer interface {
	ObserveMatch(predicate string, scope string)
}

// Engine composes predicates and scopes into single store queries
type Engine struct {
	db       *gorm.DB
	observer Observer
}

func NewEngine(db *gorm.DB, observer Observer) *Engine {
	return &Engine{db: db, observer: observer}
}

// Query selects profiles by predicate within a scope
type Query struct {
	Predicate        Predicate
	Scope            Scope
	ExcludeRequester bool
}

// MatchProfiles returns profiles satisfying q.Predicate AND the scope clause,
// ordered by user id. Narrowing scopes require the requester's home airport.
func (e *Engine) MatchProfiles(ctx context.Context, r Requester, q Query) ([]models.PilotProfile, error) {
	if err := q.Scope.check(r); err != nil {
		return nil, err
	}
	e.observe(q.Predicate.Name, q.Scope)

	tx := e.db.WithContext(ctx).
		Model(&models.PilotProfile{}).
		Select("pilot_profiles.*")

	if cond := q.Predicate.condition(e.db); cond != nil {
		tx = tx.Where(cond)
	}

	switch q.Scope {
	case ScopeState:
		tx = tx.
			Joins("JOIN airports AS home ON home.id = pilot_profiles.home_airport_id").
			Where("home.state = ?", r.HomeAirport.State)
	case ScopeHomeAirport:
		tx = tx.Where("pilot_profiles.home_airport_id = ?", r.HomeAirport.ID)
	}

	if q.ExcludeRequester {
		tx = tx.Where("pilot_profiles.user_id <> ?", r.UserID)
	}

	profiles := []models.PilotProfile{}
	err := tx.
		Preload("User").
		Preload("HomeAirport").
		Order("pilot_profiles.user_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("match %s/%s: %w", q.Predicate.Name, q.Scope, err)
	}
	return profiles, nil
}

// MatchEvents returns events with any airport slot inside the requester's scope,
// ordered by start date then id
func (e *Engine) MatchEvents(ctx context.Context, r Requester, scope Scope) ([]models.PilotEvent, error) {
	if err := scope.check(r); err != nil {
		return nil, err
	}
	e.observe("event-in-scope", scope)

	tx := e.db.WithContext(ctx).
		Model(&models.PilotEvent{}).
		Select("pilot_events.*")

	switch scope {
	case ScopeState:
		state := r.HomeAirport.State
		tx = tx.
			Joins("LEFT JOIN airports AS a1 ON a1.id = pilot_events.host_airport_id").
			Joins("LEFT JOIN airports AS a2 ON a2.id = pilot_events.second_airport_id").
			Joins("LEFT JOIN airports AS a3 ON a3.id = pilot_events.third_airport_id").
			Where("a1.state = ? OR a2.state = ? OR a3.state = ?", state, state, state)
	case ScopeHomeAirport:
		id := r.HomeAirport.ID
		tx = tx.Where(
			"pilot_events.host_airport_id = ? OR pilot_events.second_airport_id = ? OR pilot_events.third_airport_id = ?",
			id, id, id,
		)
	}

	events := []models.PilotEvent{}
	err := tx.
		Preload("Host").
		Preload("HostAirport").
		Preload("SecondAirport").
		Preload("ThirdAirport").
		Order("pilot_events.event_start_date ASC").
		Order("pilot_events.id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("match events/%s: %w", scope, err)
	}
	return events, nil
}

func (e *Engine) observe(predicate string, scope Scope) {
	if e.observer != nil {
		e.observer.ObserveMatch(predicate, string(scope))
	}
}
