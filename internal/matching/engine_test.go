package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/capability"
	"pilotconnect/internal/db"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

type countingObserver struct {
	calls map[string]int
}

func (o *countingObserver) ObserveMatch(predicate, scope string) {
	o.calls[predicate+"/"+scope]++
}

type fixture struct {
	db       *gorm.DB
	airports map[string]*models.Airport
	users    map[string]*models.User
	profiles map[string]*models.PilotProfile
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	orm, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	f := &fixture{
		db:       orm,
		airports: map[string]*models.Airport{},
		users:    map[string]*models.User{},
		profiles: map[string]*models.PilotProfile{},
	}
	for _, a := range []models.Airport{
		{ICAO: "KSFO", Name: "San Francisco Intl", City: "San Francisco", State: "CA"},
		{ICAO: "KOAK", Name: "Oakland Intl", City: "Oakland", State: "CA"},
		{ICAO: "KLAS", Name: "Harry Reid Intl", City: "Las Vegas", State: "NV"},
	} {
		a := a
		if err := orm.Create(&a).Error; err != nil {
			t.Fatalf("Failed to create airport: %v", err)
		}
		f.airports[a.ICAO] = &a
	}
	return f
}

// pilot creates a user and profile at icao ("" for no home airport) with caps set
func (f *fixture) pilot(t *testing.T, name, icao string, caps ...capability.Capability) *models.PilotProfile {
	t.Helper()
	user := &models.User{Username: name, PasswordHash: "x", IsActive: true}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	profile := &models.PilotProfile{UserID: user.ID}
	if icao != "" {
		profile.HomeAirportID = &f.airports[icao].ID
		profile.HomeAirport = f.airports[icao]
	}
	for _, c := range caps {
		profile.SetCapability(c, true)
	}
	if err := f.db.Omit("User", "HomeAirport").Create(profile).Error; err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}

	f.users[name] = user
	f.profiles[name] = profile
	return profile
}

func (f *fixture) requester(name string) Requester {
	return NewRequester(f.profiles[name])
}

func names(profiles []models.PilotProfile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.User.Username)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustPredicate(t *testing.T, name string) Predicate {
	t.Helper()
	p, err := LookupPredicate(name)
	if err != nil {
		t.Fatalf("LookupPredicate(%q): %v", name, err)
	}
	return p
}

func TestSafetyPilotOfferScopes(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "requester", "KSFO")
	f.pilot(t, "sfo", "KSFO", capability.SafetyPilotOfferIFRSingle)
	f.pilot(t, "oak", "KOAK", capability.SafetyPilotOfferIFRSingle)
	f.pilot(t, "las", "KLAS", capability.SafetyPilotOfferIFRSingle)

	obs := &countingObserver{calls: map[string]int{}}
	engine := NewEngine(f.db, obs)
	ctx := context.Background()
	offer := mustPredicate(t, SafetyPilotOffer)

	tests := []struct {
		scope    Scope
		expected []string
	}{
		{ScopeGlobal, []string{"sfo", "oak", "las"}},
		{ScopeState, []string{"sfo", "oak"}},
		{ScopeHomeAirport, []string{"sfo"}},
	}

	for _, test := range tests {
		got, err := engine.MatchProfiles(ctx, f.requester("requester"), Query{Predicate: offer, Scope: test.scope})
		if err != nil {
			t.Fatalf("scope %s: unexpected error %v", test.scope, err)
		}
		if !equal(names(got), test.expected) {
			t.Errorf("scope %s: expected %v, got %v", test.scope, test.expected, names(got))
		}
	}

	if obs.calls["safety-pilot-offer/state"] != 1 {
		t.Errorf("Expected one observed state query, got %v", obs.calls)
	}
}

func TestScopeAndPredicateFormOneConjunction(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "requester", "KSFO")
	// matches the predicate, wrong airport
	f.pilot(t, "offer-at-oak", "KOAK", capability.InstructorOfferCFI)
	// matches through a different flag at the right airport
	f.pilot(t, "need-at-sfo", "KSFO", capability.InstructorNeedCFII)
	// right airport, no instructor flag
	f.pilot(t, "renter-at-sfo", "KSFO", capability.RentNeedSingleEngine)

	engine := NewEngine(f.db, nil)
	got, err := engine.MatchProfiles(context.Background(), f.requester("requester"), Query{
		Predicate: mustPredicate(t, InstructorAny),
		Scope:     ScopeHomeAirport,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !equal(names(got), []string{"need-at-sfo"}) {
		t.Errorf("Expected [need-at-sfo], got %v", names(got))
	}
}

func TestHomeAirportIsNarrowerThanState(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "requester", "KOAK")
	f.pilot(t, "a", "KSFO", capability.InstructorOfferCFI, capability.SafetyPilotNeedVFRSingle)
	f.pilot(t, "b", "KOAK", capability.InstructorOfferCommercialSingle)
	f.pilot(t, "c", "KOAK", capability.SafetyPilotNeedIFRMulti, capability.RentOfferMultiEngine)
	f.pilot(t, "d", "KLAS", capability.InstructorNeedCFI, capability.SafetyPilotOfferVFRSingle)
	f.pilot(t, "e", "", capability.InstructorOfferCFII)

	engine := NewEngine(f.db, nil)
	ctx := context.Background()
	r := f.requester("requester")

	for _, p := range Predicates() {
		byState, err := engine.MatchProfiles(ctx, r, Query{Predicate: p, Scope: ScopeState})
		if err != nil {
			t.Fatalf("%s/state: %v", p.Name, err)
		}
		byAirport, err := engine.MatchProfiles(ctx, r, Query{Predicate: p, Scope: ScopeHomeAirport})
		if err != nil {
			t.Fatalf("%s/home-airport: %v", p.Name, err)
		}

		inState := map[uint]bool{}
		for _, profile := range byState {
			if profile.HomeState() != "CA" {
				t.Errorf("%s/state returned %s in %q", p.Name, profile.User.Username, profile.HomeState())
			}
			if !p.Matches(profile.Capabilities()) {
				t.Errorf("%s/state returned non-matching %s", p.Name, profile.User.Username)
			}
			inState[profile.UserID] = true
		}
		for _, profile := range byAirport {
			if profile.HomeAirportID == nil || *profile.HomeAirportID != r.HomeAirport.ID {
				t.Errorf("%s/home-airport returned %s away from KOAK", p.Name, profile.User.Username)
			}
			if !inState[profile.UserID] {
				t.Errorf("%s/home-airport returned %s missing from state results", p.Name, profile.User.Username)
			}
		}
	}
}

func TestExcludeRequester(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "requester", "KSFO", capability.PrivatePilot)
	f.pilot(t, "neighbour", "KSFO")

	engine := NewEngine(f.db, nil)
	everyone := mustPredicate(t, Everyone)

	got, _ := engine.MatchProfiles(context.Background(), f.requester("requester"), Query{Predicate: everyone, Scope: ScopeHomeAirport})
	if !equal(names(got), []string{"requester", "neighbour"}) {
		t.Errorf("Expected both pilots, got %v", names(got))
	}

	got, _ = engine.MatchProfiles(context.Background(), f.requester("requester"), Query{Predicate: everyone, Scope: ScopeHomeAirport, ExcludeRequester: true})
	if !equal(names(got), []string{"neighbour"}) {
		t.Errorf("Expected only neighbour, got %v", names(got))
	}
}

func TestNarrowScopesRequireHomeAirport(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "nomad", "")
	f.pilot(t, "sfo", "KSFO", capability.SafetyPilotNeedVFRSingle)

	engine := NewEngine(f.db, nil)
	ctx := context.Background()
	need := mustPredicate(t, SafetyPilotNeed)

	for _, scope := range []Scope{ScopeState, ScopeHomeAirport} {
		got, err := engine.MatchProfiles(ctx, f.requester("nomad"), Query{Predicate: need, Scope: scope})
		if !errors.Is(err, apperrors.ErrPrecondition) {
			t.Errorf("scope %s: expected ErrPrecondition, got %v", scope, err)
		}
		if got != nil {
			t.Errorf("scope %s: expected no results, got %v", scope, names(got))
		}

		if _, err := engine.MatchEvents(ctx, f.requester("nomad"), scope); !errors.Is(err, apperrors.ErrPrecondition) {
			t.Errorf("events scope %s: expected ErrPrecondition, got %v", scope, err)
		}
	}

	got, err := engine.MatchProfiles(ctx, f.requester("nomad"), Query{Predicate: need, Scope: ScopeGlobal})
	if err != nil || !equal(names(got), []string{"sfo"}) {
		t.Errorf("global: expected [sfo], got %v, %v", names(got), err)
	}
}

func TestMatchEventsByAnyAirportSlot(t *testing.T) {
	f := setupFixture(t)
	f.pilot(t, "requester", "KSFO")
	host := f.pilot(t, "host", "KLAS")

	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mk := func(name string, offset int, slots ...string) {
		e := models.PilotEvent{
			HostID:           host.UserID,
			EventName:        name,
			EventStartDate:   day.AddDate(0, 0, offset),
			EventFinishDate:  day.AddDate(0, 0, offset+1),
			EventDescription: "fly-in",
		}
		ids := make([]*uint, 3)
		for i, icao := range slots {
			if icao != "" {
				ids[i] = &f.airports[icao].ID
			}
		}
		e.HostAirportID, e.SecondAirportID, e.ThirdAirportID = ids[0], ids[1], ids[2]
		if err := f.db.Omit("Host", "HostAirport", "SecondAirport", "ThirdAirport").Create(&e).Error; err != nil {
			t.Fatalf("Failed to create event: %v", err)
		}
	}
	mk("vegas-only", 1, "KLAS")
	mk("oakland-third", 3, "KLAS", "", "KOAK")
	mk("sfo-second", 2, "", "KSFO")
	mk("no-airports", 0)

	engine := NewEngine(f.db, nil)
	ctx := context.Background()
	r := f.requester("requester")

	eventNames := func(events []models.PilotEvent) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.EventName)
		}
		return out
	}

	tests := []struct {
		scope    Scope
		expected []string
	}{
		{ScopeGlobal, []string{"no-airports", "vegas-only", "sfo-second", "oakland-third"}},
		{ScopeState, []string{"sfo-second", "oakland-third"}},
		{ScopeHomeAirport, []string{"sfo-second"}},
	}
	for _, test := range tests {
		got, err := engine.MatchEvents(ctx, r, test.scope)
		if err != nil {
			t.Fatalf("scope %s: %v", test.scope, err)
		}
		if !equal(eventNames(got), test.expected) {
			t.Errorf("scope %s: expected %v, got %v", test.scope, test.expected, eventNames(got))
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input    string
		expected Scope
		wantErr  bool
	}{
		{"", ScopeGlobal, false},
		{"GLOBAL", ScopeGlobal, false},
		{"state", ScopeState, false},
		{" home-airport ", ScopeHomeAirport, false},
		{"airport", ScopeHomeAirport, false},
		{"radius", "", true},
	}
	for _, test := range tests {
		got, err := ParseScope(test.input)
		if (err != nil) != test.wantErr || got != test.expected {
			t.Errorf("ParseScope(%q) = %q, %v", test.input, got, err)
		}
	}
}

func TestPredicateRegistry(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{SafetyPilotNeed, 3},
		{SafetyPilotOffer, 3},
		{InstructorAny, 8},
		{InstructorOffer, 4},
		{InstructorNeed, 4},
		{RentalNeed, 2},
		{RentalOffer, 2},
		{Everyone, 0},
	}
	for _, test := range tests {
		p := mustPredicate(t, test.name)
		if len(p.Capabilities) != test.expected {
			t.Errorf("%s has %d capabilities, expected %d", test.name, len(p.Capabilities), test.expected)
		}
	}

	if _, err := LookupPredicate("co-pilot"); err == nil {
		t.Error("Expected error for unknown predicate")
	}

	offer := mustPredicate(t, InstructorOffer)
	if offer.Matches(capability.NewSet(capability.InstructorNeedCFI)) {
		t.Error("instructor-offer should not match a need")
	}
	if !mustPredicate(t, Everyone).Matches(capability.NewSet()) {
		t.Error("everyone should match an empty set")
	}
}
