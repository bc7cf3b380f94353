package repositories

import (
	"context"
	"slices"
	"strings"

	"pilotconnect/internal/constants"
	models "pilotconnect/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// AirportDirectoryRepo serves the read-only directory listings with raw SQL
type AirportDirectoryRepo struct {
	db *sqlx.DB
}

func NewAirportDirectoryRepo(db *sqlx.DB) *AirportDirectoryRepo {
	return &AirportDirectoryRepo{db: db}
}

// ListOrderedByCode returns every airport ordered by ICAO code
func (r *AirportDirectoryRepo) ListOrderedByCode(ctx context.Context) ([]models.Airport, error) {
	airports := []models.Airport{}
	if err := r.db.SelectContext(ctx, &airports, r.db.Rebind(constants.ListAirportsByCode)); err != nil {
		return nil, err
	}
	sortByCode(airports)
	return airports, nil
}

// FilterByState returns the airports of one state ordered by ICAO code.
// An unknown state yields an empty slice.
func (r *AirportDirectoryRepo) FilterByState(ctx context.Context, state string) ([]models.Airport, error) {
	airports := []models.Airport{}
	if err := r.db.SelectContext(ctx, &airports, r.db.Rebind(constants.ListAirportsByState), state); err != nil {
		return nil, err
	}
	sortByCode(airports)
	return airports, nil
}

func (r *AirportDirectoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, constants.CountAirports)
	return count, err
}

// Database collations differ; the directory is always byte ordered.
func sortByCode(airports []models.Airport) {
	slices.SortStableFunc(airports, func(a, b models.Airport) int {
		if c := strings.Compare(a.ICAO, b.ICAO); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
