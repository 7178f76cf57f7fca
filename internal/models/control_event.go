package models

import "time"

// ControlEvent is a single entry of the control history.
type ControlEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Action     string    `json:"action"` // power_on | power_off | reset | calibrate | anything else
	Device     string    `json:"device"`
	Value      any       `json:"value,omitempty"`
	Message    string    `json:"message"` // human-readable, as returned to the caller
}
