package api

import (
	"pilotconnect/internal/auth"
	"pilotconnect/internal/common"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/matching"
	"pilotconnect/internal/metrics"
	"pilotconnect/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Users     *repositories.UserRepositoryGORM
	Profiles  *repositories.ProfileRepository
	Airports  *repositories.AirportRepository
	Directory *repositories.AirportDirectoryRepo
	Messages  *repositories.MessageRepository
	Events    *repositories.EventRepository
}

type Services struct {
	Cache     common.CacheInterface
	Tokens    *auth.TokenService
	User      *services.UserService
	Profile   *services.ProfileService
	Directory *services.DirectoryService
	Message   *services.MessageService
	Event     *services.EventService
	Matching  *services.MatchingService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	SQLX     *sqlx.DB
}

// InitDependencies wires repositories and services over the two database
// handles. cache backs both the airport directory and the token revocation list.
func InitDependencies(
	orm *gorm.DB,
	sqlxDB *sqlx.DB,
	cache common.CacheInterface,
	tokens *auth.TokenService,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {

	repos := &Repositories{
		Users:     repositories.NewUserRepositoryGORM(orm),
		Profiles:  repositories.NewProfileRepository(orm),
		Airports:  repositories.NewAirportRepository(orm),
		Directory: repositories.NewAirportDirectoryRepo(sqlxDB),
		Messages:  repositories.NewMessageRepository(orm),
		Events:    repositories.NewEventRepository(orm),
	}

	profileSvc := services.NewProfileService(repos.Profiles, repos.Users, repos.Airports, metricsReg)

	svcs := &Services{
		Cache:     cache,
		Tokens:    tokens,
		User:      services.NewUserService(repos.Users, repos.Profiles, tokens),
		Profile:   profileSvc,
		Directory: services.NewDirectoryService(repos.Directory, repos.Airports, repos.Profiles, cache, metricsReg),
		Message:   services.NewMessageService(repos.Messages, repos.Users, metricsReg),
		Event:     services.NewEventService(repos.Events, repos.Airports, metricsReg),
		Matching:  services.NewMatchingService(matching.NewEngine(orm, metricsReg), profileSvc),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		SQLX:     sqlxDB,
	}, nil
}
