package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"sslab_simulator/internal/logger"
	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"

	"github.com/google/uuid"
)

// Action is the closed set of control verbs the panel understands.
type Action int

const (
	ActionUnknown Action = iota
	ActionPowerOn
	ActionPowerOff
	ActionReset
	ActionCalibrate
)

// ParseAction maps the wire name to an Action. Anything unrecognized is ActionUnknown.
func ParseAction(s string) Action {
	switch s {
	case "power_on":
		return ActionPowerOn
	case "power_off":
		return ActionPowerOff
	case "reset":
		return ActionReset
	case "calibrate":
		return ActionCalibrate
	default:
		return ActionUnknown
	}
}

func (a Action) String() string {
	switch a {
	case ActionPowerOn:
		return "power_on"
	case ActionPowerOff:
		return "power_off"
	case ActionReset:
		return "reset"
	case ActionCalibrate:
		return "calibrate"
	default:
		return "unknown"
	}
}

// DefaultControlDelay is the simulated hardware latency of every control call.
const DefaultControlDelay = 500 * time.Millisecond

type ControlService struct {
	store     repository.StatusStore
	eventRepo repository.EventRepo
	publisher Publisher
	log       *logger.Logger
	delay     atomic.Int64
}

func NewControlService(
	store repository.StatusStore,
	eventRepo repository.EventRepo,
	publisher Publisher,
	delay time.Duration,
	log *logger.Logger,
) *ControlService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	s := &ControlService{store: store, eventRepo: eventRepo, publisher: publisher, log: log}
	s.SetDelay(delay)
	return s
}

// SetDelay is safe to call while requests are in flight. Negative means zero.
func (s *ControlService) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.delay.Store(int64(d))
}

func (s *ControlService) Delay() time.Duration {
	return time.Duration(s.delay.Load())
}

// Execute applies the action, records it, waits the simulated latency and
// returns the resulting panel state.
// Power actions on unknown device names create a power_{device} key.
func (s *ControlService) Execute(ctx context.Context, p ControlParams) (ControlResult, error) {
	action := ParseAction(p.Action)
	message := controlMessage(action, p.Action, p.Device)

	if action == ActionPowerOn || action == ActionPowerOff {
		on := action == ActionPowerOn
		_, err := s.store.Update(ctx, func(st *models.DeviceStatus) {
			if p.Device == models.DeviceAll {
				st.SetAllPower(on)
				return
			}
			st.SetPower(p.Device, on)
		})
		if err != nil {
			return ControlResult{}, fmt.Errorf("apply %s: %w", action, err)
		}
	}

	ev := models.ControlEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Action:     p.Action,
		Device:     p.Device,
		Value:      p.Value,
		Message:    message,
	}
	s.record(ctx, ev)

	if err := sleepCtx(ctx, s.Delay()); err != nil {
		return ControlResult{}, err
	}

	st, err := s.store.Load(ctx)
	if err != nil {
		return ControlResult{}, fmt.Errorf("load status: %w", err)
	}
	return ControlResult{Message: message, Status: st, Event: ev}, nil
}

// record stores and publishes the event. Failures never fail the control call.
func (s *ControlService) record(ctx context.Context, ev models.ControlEvent) {
	if s.eventRepo != nil {
		if err := s.eventRepo.Append(ctx, ev); err != nil && s.log != nil {
			s.log.Errorw("control_event_append_failed", "err", err, "action", ev.Action, "device", ev.Device)
		}
	}
	if err := s.publisher.PublishControl(ctx, ev); err != nil && s.log != nil {
		s.log.Warnw("control_event_publish_failed", "err", err, "action", ev.Action)
	}
}

func controlMessage(action Action, raw, device string) string {
	switch action {
	case ActionPowerOn:
		if device == models.DeviceAll {
			return "所有电源已开启"
		}
		return device + "电源已开启"
	case ActionPowerOff:
		if device == models.DeviceAll {
			return "所有电源已关闭"
		}
		return device + "电源已关闭"
	case ActionReset:
		return "设备重置完成"
	case ActionCalibrate:
		return "设备校准完成"
	default:
		return "执行操作: " + raw
	}
}

// sleepCtx waits d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
