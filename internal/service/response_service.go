package service

import (
	"time"

	"sslab_simulator/internal/models"
)

// ControlParams is a decoded /api/control request.
type ControlParams struct {
	Action string // power_on | power_off | reset | calibrate | anything else
	Device string // "all", main, module1..3 or any other name
	Value  any    // optional, recorded but not interpreted
}

// ControlResult is what the caller gets back after the simulated latency.
type ControlResult struct {
	Message string
	Status  models.DeviceStatus
	Event   models.ControlEvent
}

// LogFilter supports history filtering by time range and action.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Action string    // "" means any
}
