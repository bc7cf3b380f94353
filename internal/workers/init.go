package workers

import (
	"context"

	"pilotconnect/internal/constants"
	"pilotconnect/internal/services"
)

type WorkersContainer struct {
	DirectoryCache *DirectoryCacheWarmer
}

// InitWorkers starts the background workers; they stop when ctx is cancelled
func InitWorkers(ctx context.Context, directory *services.DirectoryService) *WorkersContainer {
	warmer := NewDirectoryCacheWarmer(directory, constants.AirportCacheTTL/2)

	go warmer.Start(ctx)

	return &WorkersContainer{
		DirectoryCache: warmer,
	}
}
