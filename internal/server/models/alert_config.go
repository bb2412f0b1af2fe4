package models

// AlertConfig is the singleton alerting/retention configuration.
// AlertCooldown is persisted and editable but not applied anywhere yet;
// repeated alerts are not debounced.
type AlertConfig struct {
	AlertEnabled  bool `json:"alert_enabled"`
	AlertCooldown int  `json:"alert_cooldown"`
	MaxLogs       int  `json:"max_logs"`
}

// DefaultAlertConfig returns the configuration seeded at first boot.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		AlertEnabled:  true,
		AlertCooldown: 5,
		MaxLogs:       500,
	}
}
