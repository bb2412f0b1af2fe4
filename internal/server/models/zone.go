package models

// Zone statuses.
const (
	ZoneActive   = "active"
	ZoneInactive = "inactive"
)

// Zone is a named monitored region tied to a camera. Only active zones
// take part in analytics and overlay rendering.
type Zone struct {
	ID        int    `json:"id"`
	Camera    string `json:"camera"`
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Status    string `json:"status"`
}

// IsActive reports whether the zone participates in analytics.
func (z *Zone) IsActive() bool {
	return z.Status == ZoneActive
}
