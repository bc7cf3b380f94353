package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/capability"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/metrics"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"

	"golang.org/x/sync/singleflight"
)

type ProfileService struct {
	profiles *repositories.ProfileRepository
	users    *repositories.UserRepositoryGORM
	airports *repositories.AirportRepository
	metrics  *metrics.MetricsRegistry

	creating singleflight.Group
	now      func() time.Time
}

func NewProfileService(
	profiles *repositories.ProfileRepository,
	users *repositories.UserRepositoryGORM,
	airports *repositories.AirportRepository,
	metricsReg *metrics.MetricsRegistry,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		airports: airports,
		metrics:  metricsReg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns the user's profile, creating an empty one on first use.
// Concurrent first calls for one user share a single insert; the unique
// index covers callers in other processes.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uint) (*models.PilotProfile, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}

	// the flight outlives a cancelled leader so followers still get a result
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.creating.Do(strconv.FormatUint(uint64(userID), 10), func() (interface{}, error) {
		profile, created, err := s.profiles.GetOrCreate(shared, userID)
		if err != nil {
			return nil, err
		}
		if created {
			s.metrics.ProfilesCreatedTotal.Inc()
			logging.Info("Created pilot profile", "user_id", userID)
		}
		return profile, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing a flight each get their own copy
	profile := *v.(*models.PilotProfile)
	return &profile, nil
}

// CreateProfile is the strict path: a second profile for the user is an error
func (s *ProfileService) CreateProfile(ctx context.Context, userID uint) (*models.PilotProfile, error) {
	profile := &models.PilotProfile{UserID: userID}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, apperrors.ErrUniqueness) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUniqueness, constants.MsgProfileAlreadyExists)
		}
		return nil, err
	}
	s.metrics.ProfilesCreatedTotal.Inc()
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.PilotProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Update applies the changed fields. It never stamps last activity.
func (s *ProfileService) Update(ctx context.Context, userID uint, req dtos.UpdateProfileRequest) (*models.PilotProfile, error) {
	if req.FlightHours != nil && *req.FlightHours < 0 {
		return nil, fmt.Errorf("%w: flight hours cannot be negative", apperrors.ErrValidation)
	}

	changes := make(map[capability.Capability]bool, len(req.Capabilities))
	for name, on := range req.Capabilities {
		c, err := capability.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		changes[c] = on
	}

	var home *models.Airport
	if req.HomeAirportID != nil && !req.ClearHomeAirport {
		airport, err := s.airports.FindByID(ctx, *req.HomeAirportID)
		if err != nil {
			return nil, err
		}
		if airport == nil {
			return nil, fmt.Errorf("%w: airport %d does not exist", apperrors.ErrValidation, *req.HomeAirportID)
		}
		home = airport
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case req.ClearHomeAirport:
		profile.HomeAirportID = nil
		profile.HomeAirport = nil
	case home != nil:
		profile.HomeAirportID = &home.ID
		profile.HomeAirport = home
	}
	if req.FlightHours != nil {
		profile.FlightHours = *req.FlightHours
	}
	if req.Comments != nil {
		profile.Comments = req.Comments
	}
	for c, on := range changes {
		profile.SetCapability(c, on)
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// Touch records activity now
func (s *ProfileService) Touch(ctx context.Context, userID uint) (*models.PilotProfile, error) {
	if err := s.profiles.Touch(ctx, userID, s.now()); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}
