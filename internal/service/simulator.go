package service

import (
	"context"
	"fmt"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"
)

// ----------- Noise model -----------
const (
	BaseTemperatureC  = 22.0
	TempJitterLow     = -0.5
	TempJitterHigh    = 1.0
	BaseHumidity      = 45.0
	HumidityJitterLow = -2.0
	HumidityJitterHi  = 2.0

	DeviceCount         = 12
	DeviceType          = "teaching_equipment"
	DeviceOnlineChance  = 0.9
	DeviceTempJitterLow = -2.0
	DeviceTempJitterHi  = 3.0
)

// Device connectivity states.
const (
	DeviceOnline  = "online"
	DeviceOffline = "offline"
)

// StatusService jitters the shared panel state on every sample.
type StatusService struct {
	store repository.StatusStore
	rnd   Random
}

func NewStatusService(store repository.StatusStore, rnd Random) *StatusService {
	return &StatusService{store: store, rnd: rnd}
}

// Sample rewrites temperature and humidity with fresh noise and returns the
// whole state.
func (s *StatusService) Sample(ctx context.Context) (models.DeviceStatus, error) {
	st, err := s.store.Update(ctx, func(st *models.DeviceStatus) {
		st.Temperature = round1(BaseTemperatureC + uniform(s.rnd, TempJitterLow, TempJitterHigh))
		st.Humidity = round1(BaseHumidity + uniform(s.rnd, HumidityJitterLow, HumidityJitterHi))
	})
	if err != nil {
		return models.DeviceStatus{}, fmt.Errorf("sample status: %w", err)
	}
	return st, nil
}

// Current returns the state without touching it.
func (s *StatusService) Current(ctx context.Context) (models.DeviceStatus, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return models.DeviceStatus{}, fmt.Errorf("load status: %w", err)
	}
	return st, nil
}

// DevicesService fabricates the instrument list. Nothing is stored.
type DevicesService struct {
	rnd Random
}

func NewDevicesService(rnd Random) *DevicesService {
	return &DevicesService{rnd: rnd}
}

// List returns DeviceCount freshly randomized devices.
func (s *DevicesService) List(ctx context.Context) (models.DeviceList, error) {
	if err := ctx.Err(); err != nil {
		return models.DeviceList{}, err
	}

	devices := make([]models.Device, 0, DeviceCount)
	online := 0
	for i := 1; i <= DeviceCount; i++ {
		d := models.Device{
			ID:          fmt.Sprintf("device_%02d", i),
			Name:        fmt.Sprintf("实验设备 %d", i),
			Type:        DeviceType,
			Status:      DeviceOffline,
			Power:       s.rnd.Float64() < 0.5,
			Temperature: round1(BaseTemperatureC + uniform(s.rnd, DeviceTempJitterLow, DeviceTempJitterHi)),
		}
		if s.rnd.Float64() < DeviceOnlineChance {
			d.Status = DeviceOnline
			online++
		}
		devices = append(devices, d)
	}

	return models.DeviceList{
		Devices: devices,
		Total:   len(devices),
		Online:  online,
	}, nil
}
