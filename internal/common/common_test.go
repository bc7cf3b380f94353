package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pilotconnect/internal/db"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	orm, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return orm
}

func TestCacheServiceDeletePrefix(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	c.Set("AIRPORTS_STATE_CA", 1, time.Minute)
	c.Set("AIRPORTS_STATE_NV", 2, time.Minute)
	c.Set("AIRPORTS_ALL", 3, time.Minute)

	c.DeletePrefix("AIRPORTS_STATE_")

	if _, ok := c.Get("AIRPORTS_STATE_CA"); ok {
		t.Error("Expected CA key removed")
	}
	if _, ok := c.Get("AIRPORTS_ALL"); !ok {
		t.Error("Expected AIRPORTS_ALL kept")
	}
}

func TestCachedAsLoadsOnce(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	calls := 0
	load := func() ([]models.Airport, error) {
		calls++
		return []models.Airport{{ICAO: "KSFO"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := CachedAs(c, "AIRPORTS_ALL", time.Minute, load)
		if err != nil || len(got) != 1 || got[0].ICAO != "KSFO" {
			t.Fatalf("Unexpected result %v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected loader called once, got %d", calls)
	}
}

func TestCachedAsConvertsDecodedJSON(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)

	// what the Redis backend hands back after a round trip
	var generic interface{}
	raw, _ := json.Marshal([]models.Airport{{ID: 4, ICAO: "KOAK", State: "CA"}})
	_ = json.Unmarshal(raw, &generic)
	c.Set("AIRPORTS_STATE_CA", generic, time.Minute)

	got, err := CachedAs(c, "AIRPORTS_STATE_CA", time.Minute, func() ([]models.Airport, error) {
		t.Fatal("loader should not run on a hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 4 || got[0].ICAO != "KOAK" {
		t.Errorf("Unexpected conversion: %+v", got)
	}
}

func TestCachedAsPropagatesLoaderError(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	boom := errors.New("db down")

	_, err := CachedAs(c, "k", time.Minute, func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Expected loader error, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected nothing cached after a failed load")
	}
}

func TestCacheRevocationList(t *testing.T) {
	list := NewCacheRevocationList(NewCacheService(time.Minute, time.Minute))
	ctx := context.Background()

	if revoked, _ := list.IsRevoked(ctx, "abc"); revoked {
		t.Fatal("Expected token not revoked")
	}
	_ = list.Revoke(ctx, "abc", time.Now().Add(time.Hour))
	if revoked, _ := list.IsRevoked(ctx, "abc"); !revoked {
		t.Error("Expected token revoked")
	}

	_ = list.Revoke(ctx, "old", time.Now().Add(-time.Hour))
	if revoked, _ := list.IsRevoked(ctx, "old"); revoked {
		t.Error("Expected already-expired token to be ignored")
	}
}

func TestRespondEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondSuccess(rr, time.Now(), "ok", map[string]int{"n": 1}, http.StatusCreated)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rr.Code)
	}
	var body dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if body.Status != "ok" || !strings.HasSuffix(body.ResponseTime, "ms") {
		t.Errorf("Unexpected envelope: %+v", body)
	}

	rr = httptest.NewRecorder()
	RespondError(rr, time.Now(), errors.New("access denied"), "fallback", http.StatusForbidden)
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if rr.Code != http.StatusForbidden || body.Status != "error" || body.Message != "access denied" {
		t.Errorf("Unexpected error envelope: %d %+v", rr.Code, body)
	}
}

func TestLoadFromCSVReportsRowFailures(t *testing.T) {
	orm := setupTestDB(t)
	cache := NewCacheService(time.Minute, time.Minute)
	cache.Set("AIRPORTS_ALL", "stale", time.Minute)
	cache.Set("AIRPORTS_STATE_CA", "stale", time.Minute)

	input := strings.Join([]string{
		"country_code,iata,icao,airport,latitude,longitude,city,state",
		"US,SFO,ksfo,San Francisco Intl,37.6188,-122.3750,San Francisco,CA",
		"US,OAK,KOAK,Oakland Intl,not-a-number,-122.2208,Oakland,CA",
		"US,LAS,,Harry Reid Intl,36.0840,-115.1537,Las Vegas,NV",
		",LAS,KLAS,Harry Reid Intl,36.0840,-115.1537,Las Vegas,NV",
	}, "\n")

	loader := NewAirportLoaderService(orm, cache)
	result, err := loader.LoadFromCSV(context.Background(), strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if len(result.Failures) != 2 || result.Failures[0].Row != "3" || result.Failures[1].Row != "4" {
		t.Errorf("Unexpected failures: %+v", result.Failures)
	}

	repo := repositories.NewAirportRepository(orm)
	sfo, _ := repo.FindByICAO(context.Background(), "KSFO")
	if sfo == nil || sfo.State != "CA" || sfo.Latitude != 37.6188 {
		t.Errorf("Unexpected KSFO row: %+v", sfo)
	}
	las, _ := repo.FindByICAO(context.Background(), "KLAS")
	if las == nil || las.CountryCode != "US" {
		t.Errorf("Expected default country code, got %+v", las)
	}

	if _, ok := cache.Get("AIRPORTS_ALL"); ok {
		t.Error("Expected AIRPORTS_ALL invalidated")
	}
	if _, ok := cache.Get("AIRPORTS_STATE_CA"); ok {
		t.Error("Expected state keys invalidated")
	}
}

func TestLoadFromCSVRequiresColumns(t *testing.T) {
	loader := NewAirportLoaderService(setupTestDB(t), nil)
	_, err := loader.LoadFromCSV(context.Background(), strings.NewReader("icao,airport\nKSFO,SFO\n"), false)
	if err == nil || !strings.Contains(err.Error(), "country_code") {
		t.Errorf("Expected missing column error, got %v", err)
	}
}

func TestLoadFromJSONReplace(t *testing.T) {
	orm := setupTestDB(t)
	orm.Create(&models.Airport{ICAO: "KOLD", Name: "Old Field", State: "CA"})

	input := `{
		"KSFO": {"icao": "KSFO", "iata": "SFO", "name": "San Francisco Intl", "city": "San Francisco", "state": "CA", "country": "US", "lat": 37.6, "lon": -122.4},
		"BAD": {"icao": "", "name": "Nowhere"}
	}`

	loader := NewAirportLoaderService(orm, nil)
	result, err := loader.LoadFromJSON(context.Background(), strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Imported != 1 || len(result.Failures) != 1 || result.Failures[0].Row != "BAD" {
		t.Errorf("Unexpected result: %+v", result)
	}

	stats, _ := loader.GetStats(context.Background())
	if stats["total_airports"] != int64(1) {
		t.Errorf("Expected old airports replaced, stats %v", stats)
	}
}
