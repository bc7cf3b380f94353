package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/common"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/metrics"
	models "pilotconnect/internal/models/gorm"
)

// DirectoryService serves the airport directory through the cache
type DirectoryService struct {
	directory *repositories.AirportDirectoryRepo
	airports  *repositories.AirportRepository
	profiles  *repositories.ProfileRepository
	cache     common.CacheInterface
	metrics   *metrics.MetricsRegistry
}

func NewDirectoryService(
	directory *repositories.AirportDirectoryRepo,
	airports *repositories.AirportRepository,
	profiles *repositories.ProfileRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *DirectoryService {
	return &DirectoryService{
		directory: directory,
		airports:  airports,
		profiles:  profiles,
		cache:     cache,
		metrics:   metricsReg,
	}
}

// ListOrderedByCode returns every airport by ICAO code
func (s *DirectoryService) ListOrderedByCode(ctx context.Context) ([]models.Airport, error) {
	key := string(constants.CachePrefixAirportsAll)
	return cached(s, key, key, func() ([]models.Airport, error) {
		return s.directory.ListOrderedByCode(ctx)
	})
}

// FilterByState returns one state's airports by ICAO code. Unknown states are empty, not errors.
func (s *DirectoryService) FilterByState(ctx context.Context, state string) ([]models.Airport, error) {
	state = strings.TrimSpace(state)
	pattern := string(constants.CachePrefixAirportsState)
	return cached(s, pattern+state, pattern, func() ([]models.Airport, error) {
		return s.directory.FilterByState(ctx, state)
	})
}

// FindByICAO is case-insensitive
func (s *DirectoryService) FindByICAO(ctx context.Context, icao string) (*models.Airport, error) {
	airport, err := s.airports.FindByICAO(ctx, common.NormalizeCode(icao))
	if err != nil {
		return nil, err
	}
	if airport == nil {
		return nil, fmt.Errorf("%w: airport %s", apperrors.ErrNotFound, icao)
	}
	return airport, nil
}

// ListForRequesterState lists the airports in the state of the user's home airport
func (s *DirectoryService) ListForRequesterState(ctx context.Context, userID uint) ([]models.Airport, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrHomeAirportRequired
	}
	if err != nil {
		return nil, err
	}
	if profile.HomeAirport == nil {
		return nil, apperrors.ErrHomeAirportRequired
	}
	return s.FilterByState(ctx, profile.HomeAirport.State)
}

func cached(s *DirectoryService, key, pattern string, load func() ([]models.Airport, error)) ([]models.Airport, error) {
	hit := true
	airports, err := common.CachedAs(s.cache, key, constants.AirportCacheTTL, func() ([]models.Airport, error) {
		hit = false
		return load()
	})
	if err != nil {
		return nil, err
	}
	s.metrics.CacheResult(pattern, hit)
	// the memory backend hands out the cached slice itself
	return slices.Clone(airports), nil
}
