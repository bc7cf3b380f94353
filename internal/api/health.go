package api

import (
	"net/http"
	"time"

	"pilotconnect/internal/common"
	"pilotconnect/internal/models/dtos"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		services := map[string]string{"database": "ok"}
		overallStatus := "ok"
		if err := db.PingContext(r.Context()); err != nil {
			services["database"] = "down: " + err.Error()
			overallStatus = "down"
		}

		resp := dtos.HealthResponse{
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Services: services,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, "Health check", resp, code)
	}
}
