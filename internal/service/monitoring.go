package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"
)

const (
	BaseAirPressureHPa = 1013.2
	AirPressureJitter  = 5.0
	BaseCO2PPM         = 420.0
	CO2JitterLow       = -20.0
	CO2JitterHigh      = 30.0
)

// EnvironmentService combines the panel climate with fresh pressure/CO2 noise.
type EnvironmentService struct {
	store repository.StatusStore
	rnd   Random
}

func NewEnvironmentService(store repository.StatusStore, rnd Random) *EnvironmentService {
	return &EnvironmentService{store: store, rnd: rnd}
}

// Read reports the last sampled temperature/humidity; it does not jitter them.
func (s *EnvironmentService) Read(ctx context.Context) (models.EnvironmentReading, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return models.EnvironmentReading{}, fmt.Errorf("load status: %w", err)
	}
	return models.EnvironmentReading{
		Temperature: st.Temperature,
		Humidity:    st.Humidity,
		AirPressure: round1(BaseAirPressureHPa + uniform(s.rnd, -AirPressureJitter, AirPressureJitter)),
		CO2Level:    int(math.Round(BaseCO2PPM + uniform(s.rnd, CO2JitterLow, CO2JitterHigh))),
		AirQuality:  st.AirQuality,
		Ventilation: st.Ventilation,
		Timestamp:   time.Now(),
	}, nil
}

// SafetyService reports the fixed inspection result.
type SafetyService struct {
	store repository.StatusStore
}

func NewSafetyService(store repository.StatusStore) *SafetyService {
	return &SafetyService{store: store}
}

func (s *SafetyService) Snapshot(ctx context.Context) (models.SafetySnapshot, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return models.SafetySnapshot{}, fmt.Errorf("load status: %w", err)
	}
	return models.SafetySnapshot{
		SafetyLevel:    st.SafetyLevel,
		EmergencyStop:  "可用",
		FireSystem:     "正常",
		Ventilation:    "正常",
		DoorAccess:     "正常",
		Surveillance:   "在线",
		GasDetection:   "未检出",
		RadiationLevel: "正常",
		Timestamp:      time.Now(),
	}, nil
}
