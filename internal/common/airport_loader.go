package common

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/logging"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

// AirportLoaderService handles loading airport data from JSON or CSV
type AirportLoaderService struct {
	repo  *repositories.AirportRepository
	cache CacheInterface
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO    string  `json:"icao"`
	IATA    string  `json:"iata"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// RowError reports one input row that could not be imported
type RowError struct {
	Row    string `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %s: %s", e.Row, e.Reason)
}

// ImportResult summarises a load: rows written plus rows skipped with reasons
type ImportResult struct {
	Imported int        `json:"imported"`
	Failures []RowError `json:"failures"`
}

// CSVColumns are the spreadsheet columns the CSV loader requires
var CSVColumns = []string{"country_code", "iata", "icao", "airport", "latitude", "longitude", "city", "state"}

// NewAirportLoaderService creates a new airport loader service.
// cache may be nil; when set, directory keys are dropped after a load.
func NewAirportLoaderService(db *gorm.DB, cache CacheInterface) *AirportLoaderService {
	return &AirportLoaderService{
		repo:  repositories.NewAirportRepository(db),
		cache: cache,
	}
}

// LoadFromJSON loads airports from a JSON reader
// Expected format: object with airport data as values
// Example: {"KJFK": {"icao": "KJFK", "name": "John F. Kennedy...", ...}}
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader, replace bool) (*ImportResult, error) {
	var rawData map[string]RawAirportData
	if err := json.NewDecoder(reader).Decode(&rawData); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(rawData) == 0 {
		return nil, fmt.Errorf("no airport data found in JSON")
	}

	logging.Info("Decoded airport JSON", "rows", len(rawData))

	// map order is random; keep imports reproducible
	keys := make([]string, 0, len(rawData))
	for k := range rawData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := &ImportResult{}
	airports := make([]models.Airport, 0, len(rawData))
	for _, key := range keys {
		raw := rawData[key]
		airport := models.Airport{
			ICAO:        NormalizeCode(raw.ICAO),
			IATA:        NormalizeCode(raw.IATA),
			Name:        strings.TrimSpace(raw.Name),
			CountryCode: NormalizeCode(raw.Country),
			City:        strings.TrimSpace(raw.City),
			State:       strings.TrimSpace(raw.State),
			Latitude:    raw.Lat,
			Longitude:   raw.Lon,
		}
		if err := validateAirport(&airport); err != nil {
			result.Failures = append(result.Failures, RowError{Row: key, Reason: err.Error()})
			continue
		}
		airports = append(airports, airport)
	}

	return s.store(ctx, airports, result, replace)
}

// LoadFromCSV loads airports from a CSV export of the airport spreadsheet.
// The header row must name every column in CSVColumns, in any order.
func (s *AirportLoaderService) LoadFromCSV(ctx context.Context, reader io.Reader, replace bool) (*ImportResult, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range CSVColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", col)
		}
	}

	result := &ImportResult{}
	var airports []models.Airport
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		row := strconv.Itoa(line)
		if err != nil {
			result.Failures = append(result.Failures, RowError{Row: row, Reason: err.Error()})
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		airport := models.Airport{
			ICAO:        NormalizeCode(field("icao")),
			IATA:        NormalizeCode(field("iata")),
			Name:        field("airport"),
			CountryCode: NormalizeCode(field("country_code")),
			City:        field("city"),
			State:       field("state"),
		}

		if airport.Latitude, err = parseCoordinate(field("latitude"), 90); err != nil {
			result.Failures = append(result.Failures, RowError{Row: row, Reason: "latitude: " + err.Error()})
			continue
		}
		if airport.Longitude, err = parseCoordinate(field("longitude"), 180); err != nil {
			result.Failures = append(result.Failures, RowError{Row: row, Reason: "longitude: " + err.Error()})
			continue
		}
		if err := validateAirport(&airport); err != nil {
			result.Failures = append(result.Failures, RowError{Row: row, Reason: err.Error()})
			continue
		}
		airports = append(airports, airport)
	}

	return s.store(ctx, airports, result, replace)
}

// GetStats returns statistics about loaded airports
func (s *AirportLoaderService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_airports": count,
	}, nil
}

func (s *AirportLoaderService) store(ctx context.Context, airports []models.Airport, result *ImportResult, replace bool) (*ImportResult, error) {
	for _, f := range result.Failures {
		logging.Warn("Skipping airport row", "row", f.Row, "reason", f.Reason)
	}

	if len(airports) == 0 {
		return result, fmt.Errorf("no valid airports found after parsing")
	}

	if replace {
		if err := s.repo.DeleteAll(ctx); err != nil {
			return result, fmt.Errorf("failed to delete existing airports: %w", err)
		}
		logging.Info("Deleted existing airports")
	}

	if err := s.repo.BatchInsert(ctx, airports, constants.AirportBatchSize); err != nil {
		return result, fmt.Errorf("failed to insert airports: %w", err)
	}
	result.Imported = len(airports)

	if s.cache != nil {
		s.cache.Delete(string(constants.CachePrefixAirportsAll))
		s.cache.DeletePrefix(string(constants.CachePrefixAirportsState))
	}

	logging.Info("Imported airports", "imported", result.Imported, "skipped", len(result.Failures))
	return result, nil
}

func validateAirport(a *models.Airport) error {
	switch {
	case a.ICAO == "":
		return errors.New("icao is required")
	case len(a.ICAO) > 4:
		return fmt.Errorf("icao %q is longer than 4 characters", a.ICAO)
	case len(a.IATA) > 3:
		return fmt.Errorf("iata %q is longer than 3 characters", a.IATA)
	case a.Name == "":
		return errors.New("airport name is required")
	case len(a.CountryCode) > 2:
		return fmt.Errorf("country code %q is longer than 2 characters", a.CountryCode)
	}
	if a.CountryCode == "" {
		a.CountryCode = "US"
	}
	return nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%v is out of range", v)
	}
	return v, nil
}
