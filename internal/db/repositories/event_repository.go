package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilotconnect/internal/apperrors"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// withDetails preloads the host and every airport slot
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Host").
		Preload("HostAirport").
		Preload("SecondAirport").
		Preload("ThirdAirport")
}

func (r *EventRepository) Create(ctx context.Context, event *models.PilotEvent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.PilotEvent, error) {
	var event models.PilotEvent

	err := r.db.WithContext(ctx).Scopes(withDetails).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	return &event, nil
}

// Save writes every column of the event. Relationships are left alone.
func (r *EventRepository) Save(ctx context.Context, event *models.PilotEvent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PilotEvent{}, id).Error
}

// ListUpcoming returns events finishing on or after day, by start date
func (r *EventRepository) ListUpcoming(ctx context.Context, day time.Time) ([]models.PilotEvent, error) {
	events := []models.PilotEvent{}
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("event_finish_date >= ?", day).
		Order("event_start_date ASC").
		Order("id ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListHostedBy(ctx context.Context, hostID uint) ([]models.PilotEvent, error) {
	events := []models.PilotEvent{}
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("host_id = ?", hostID).
		Order("event_start_date ASC").
		Order("id ASC").
		Find(&events).Error
	return events, err
}
