package workers

import (
	"context"
	"time"

	"pilotconnect/internal/logging"
	"pilotconnect/internal/services"
)

// DirectoryCacheWarmer keeps the full airport listing cached so the first
// directory request after expiry does not pay for the query
type DirectoryCacheWarmer struct {
	directory *services.DirectoryService
	interval  time.Duration
}

func NewDirectoryCacheWarmer(directory *services.DirectoryService, interval time.Duration) *DirectoryCacheWarmer {
	return &DirectoryCacheWarmer{directory: directory, interval: interval}
}

// Start warms once, then on every tick until ctx is done
func (w *DirectoryCacheWarmer) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *DirectoryCacheWarmer) warm(ctx context.Context) {
	airports, err := w.directory.ListOrderedByCode(ctx)
	if err != nil {
		logging.Warn("Failed to warm airport directory cache", "error", err)
		return
	}
	logging.Debug("Airport directory cache warm", "airports", len(airports))
}
