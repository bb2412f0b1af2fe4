package models

// LogEntry is one analytics snapshot as kept in the live log and returned
// by the analytics endpoint. Time is wall-clock HH:MM:SS, Zones maps zone
// name to the sampled occupancy count.
type LogEntry struct {
	Time  string         `json:"time"`
	Zones map[string]int `json:"zones"`
	Total int            `json:"total"`
	Alert bool           `json:"alert"`
}
