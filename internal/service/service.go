package service

import (
	"context"
	"time"

	"sslab_simulator/internal/logger"
	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"
)

// Status serves the panel snapshot. Sample applies sensor jitter first.
type Status interface {
	Sample(ctx context.Context) (models.DeviceStatus, error)
	Current(ctx context.Context) (models.DeviceStatus, error)
}

// Devices lists the simulated bench instruments.
type Devices interface {
	List(ctx context.Context) (models.DeviceList, error)
}

// Environment exposes the lab sensor reading.
type Environment interface {
	Read(ctx context.Context) (models.EnvironmentReading, error)
}

// Safety exposes the static safety inspection report.
type Safety interface {
	Snapshot(ctx context.Context) (models.SafetySnapshot, error)
}

// Control executes panel actions (power, reset, calibrate).
type Control interface {
	Execute(ctx context.Context, p ControlParams) (ControlResult, error)
	// SetDelay changes the simulated hardware latency at runtime.
	SetDelay(d time.Duration)
}

// EventLog exposes the control history with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

// Telemetry pushes status samples to the publisher until ctx is canceled.
type Telemetry interface {
	Run(ctx context.Context, tick time.Duration)
}

// Publisher receives status samples and control events for fan-out (MQTT).
type Publisher interface {
	PublishStatus(ctx context.Context, st models.DeviceStatus) error
	PublishControl(ctx context.Context, ev models.ControlEvent) error
}

// Service aggregates all sub-services.
type Service struct {
	Status
	Devices
	Environment
	Safety
	Control
	EventLog
	Telemetry
}

// Options tune the simulation. Zero values are valid: global random source,
// no control delay, no publisher, no logging.
type Options struct {
	Random       Random
	ControlDelay time.Duration
	Publisher    Publisher
	Log          *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Random == nil {
		opts.Random = GlobalRandom()
	}
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}

	status := NewStatusService(repos.StatusStore, opts.Random)
	return &Service{
		Status:      status,
		Devices:     NewDevicesService(opts.Random),
		Environment: NewEnvironmentService(repos.StatusStore, opts.Random),
		Safety:      NewSafetyService(repos.StatusStore),
		Control:     NewControlService(repos.StatusStore, repos.EventRepo, opts.Publisher, opts.ControlDelay, opts.Log),
		EventLog:    NewEventLogService(repos.EventRepo),
		Telemetry:   NewTelemetryService(status, opts.Publisher, opts.Log),
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishStatus(context.Context, models.DeviceStatus) error { return nil }
func (nopPublisher) PublishControl(context.Context, models.ControlEvent) error { return nil }
