package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/sectors/internal/sectors/store"
	"github.com/aussiebroadwan/sectors/pkg/httpx"
	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that also pings the database
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sectorsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	sectorsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &sectorsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness: database ping failed", "error", err)
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, sectorsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
