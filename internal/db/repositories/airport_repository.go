package repositories

import (
	"context"
	"errors"

	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gorm.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gorm.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByICAO finds an airport by ICAO code (case-insensitive).
// Returns nil, nil when nothing matches.
func (r *AirportRepository) FindByICAO(ctx context.Context, icao string) (*models.Airport, error) {
	var airport models.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?)", icao).
		Order("id ASC").
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// FindByID returns nil, nil when the id is unknown
func (r *AirportRepository) FindByID(ctx context.Context, id uint) (*models.Airport, error) {
	var airport models.Airport

	err := r.db.WithContext(ctx).First(&airport, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// CountExisting returns how many of the distinct ids exist
func (r *AirportRepository) CountExisting(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Airport{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []models.Airport, batchSize int) error {
	if len(airports) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		CreateInBatches(airports, batchSize).Error
}

// DeleteAll deletes all airports (useful for re-importing)
func (r *AirportRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Airport{}).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Airport{}).Count(&count).Error
	return count, err
}
