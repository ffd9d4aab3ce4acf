package sectorsdk

import "time"

// Sector is a sector as the API returns it.
type Sector struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SectorRequest is the body of create and update requests. ID is nil for a
// sector that does not exist yet and is sent as an explicit JSON null.
type SectorRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded".
	Status string `json:"status"`

	// Uptime is the service uptime as a Go duration string.
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks is only populated by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
