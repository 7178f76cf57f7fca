package models

import "time"

// EnvironmentReading is one sample of the lab environment sensors.
type EnvironmentReading struct {
	Temperature float64   `json:"temperature"`  // °C
	Humidity    float64   `json:"humidity"`     // %RH
	AirPressure float64   `json:"air_pressure"` // hPa
	CO2Level    int       `json:"co2_level"`    // ppm
	AirQuality  string    `json:"air_quality"`
	Ventilation string    `json:"ventilation"`
	Timestamp   time.Time `json:"timestamp"`
}

// SafetySnapshot is the static safety inspection report.
type SafetySnapshot struct {
	SafetyLevel    string    `json:"safety_level"`
	EmergencyStop  string    `json:"emergency_stop"`
	FireSystem     string    `json:"fire_system"`
	Ventilation    string    `json:"ventilation"`
	DoorAccess     string    `json:"door_access"`
	Surveillance   string    `json:"surveillance"`
	GasDetection   string    `json:"gas_detection"`
	RadiationLevel string    `json:"radiation_level"`
	Timestamp      time.Time `json:"timestamp"`
}
