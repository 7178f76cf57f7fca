package service

import (
	"context"
	"time"

	"sslab_simulator/internal/logger"
)

// TelemetryService periodically publishes status samples.
type TelemetryService struct {
	status    Status
	publisher Publisher
	log       *logger.Logger
}

func NewTelemetryService(status Status, publisher Publisher, log *logger.Logger) *TelemetryService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &TelemetryService{status: status, publisher: publisher, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *TelemetryService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.publishOnce(ctx); err != nil && s.log != nil {
				s.log.Warnw("telemetry_publish_failed", "err", err)
			}
		}
	}
}

func (s *TelemetryService) publishOnce(ctx context.Context) error {
	st, err := s.status.Sample(ctx)
	if err != nil {
		return err
	}
	return s.publisher.PublishStatus(ctx, st)
}
