package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/common"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/metrics"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"
)

type EventService struct {
	events   *repositories.EventRepository
	airports *repositories.AirportRepository
	metrics  *metrics.MetricsRegistry
}

func NewEventService(
	events *repositories.EventRepository,
	airports *repositories.AirportRepository,
	metricsReg *metrics.MetricsRegistry,
) *EventService {
	return &EventService{
		events:   events,
		airports: airports,
		metrics:  metricsReg,
	}
}

// Create stores a new event hosted by hostID. A start date after the finish
// date is stored as given.
func (s *EventService) Create(ctx context.Context, hostID uint, req dtos.EventRequest) (*models.PilotEvent, error) {
	event := &models.PilotEvent{HostID: hostID}
	if err := s.apply(ctx, event, req); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.metrics.EventsCreatedTotal.Inc()
	logging.Info("Created pilot event", "event_id", event.ID, "host_id", hostID)

	return s.events.GetByID(ctx, event.ID)
}

func (s *EventService) Get(ctx context.Context, id uint) (*models.PilotEvent, error) {
	return s.events.GetByID(ctx, id)
}

// ListUpcoming returns events finishing on or after the day of now
func (s *EventService) ListUpcoming(ctx context.Context, now time.Time) ([]models.PilotEvent, error) {
	return s.events.ListUpcoming(ctx, common.StartOfDay(now))
}

func (s *EventService) ListHostedBy(ctx context.Context, hostID uint) ([]models.PilotEvent, error) {
	return s.events.ListHostedBy(ctx, hostID)
}

// Update replaces the event's fields. Only the host may do this.
func (s *EventService) Update(ctx context.Context, id uint, req dtos.EventRequest, actorID uint) (*models.PilotEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.HostID != actorID {
		return nil, fmt.Errorf("%w: only the host can edit this event", apperrors.ErrAuthorization)
	}

	if err := s.apply(ctx, event, req); err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.events.GetByID(ctx, id)
}

// Delete removes the event permanently. Only the host may do this.
func (s *EventService) Delete(ctx context.Context, id uint, actorID uint) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.HostID != actorID {
		return fmt.Errorf("%w: only the host can delete this event", apperrors.ErrAuthorization)
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	logging.Info("Deleted pilot event", "event_id", id, "host_id", actorID)
	return nil
}

// apply validates req and copies it onto event; event is untouched on error
func (s *EventService) apply(ctx context.Context, event *models.PilotEvent, req dtos.EventRequest) error {
	name := strings.TrimSpace(req.EventName)
	switch {
	case name == "":
		return fmt.Errorf("%w: event name is required", apperrors.ErrValidation)
	case utf8.RuneCountInString(name) > constants.MaxEventNameLen:
		return fmt.Errorf("%w: event name is longer than %d characters", apperrors.ErrValidation, constants.MaxEventNameLen)
	case strings.TrimSpace(req.EventDescription) == "":
		return fmt.Errorf("%w: event description is required", apperrors.ErrValidation)
	}

	start, err := parseDate("event_start_date", req.EventStartDate)
	if err != nil {
		return err
	}
	finish, err := parseDate("event_finish_date", req.EventFinishDate)
	if err != nil {
		return err
	}

	slots := models.PilotEvent{
		HostAirportID:   req.HostAirportID,
		SecondAirportID: req.SecondAirportID,
		ThirdAirportID:  req.ThirdAirportID,
	}
	if err := s.checkAirports(ctx, slots.AirportIDs()); err != nil {
		return err
	}

	event.EventName = name
	event.EventStartDate = start
	event.EventFinishDate = finish
	event.HostAirportID = req.HostAirportID
	event.SecondAirportID = req.SecondAirportID
	event.ThirdAirportID = req.ThirdAirportID
	event.EventDescription = req.EventDescription
	return nil
}

func (s *EventService) checkAirports(ctx context.Context, slotIDs []uint) error {
	seen := map[uint]bool{}
	var ids []uint
	for _, id := range slotIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	count, err := s.airports.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: unknown airport in %v", apperrors.ErrValidation, ids)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dtos.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", apperrors.ErrValidation, field)
	}
	return t.UTC(), nil
}
