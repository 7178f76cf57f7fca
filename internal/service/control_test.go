package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sslab_simulator/internal/models"
)

func newControl(t *testing.T) (*ControlService, *localEventRepo, *fakePublisher) {
	t.Helper()
	ev := &localEventRepo{}
	pub := &fakePublisher{}
	return NewControlService(newStore(), ev, pub, 0, nil), ev, pub
}

func TestParseAction_RoundTrip(t *testing.T) {
	for _, a := range []Action{ActionPowerOn, ActionPowerOff, ActionReset, ActionCalibrate} {
		if got := ParseAction(a.String()); got != a {
			t.Fatalf("ParseAction(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if ParseAction("self_destruct") != ActionUnknown {
		t.Fatalf("unrecognized verb must map to ActionUnknown")
	}
	if ParseAction("POWER_ON") != ActionUnknown {
		t.Fatalf("matching is case-sensitive")
	}
}

func TestExecute_PowerAll(t *testing.T) {
	svc, _, _ := newControl(t)
	ctx := context.Background()

	res, err := svc.Execute(ctx, ControlParams{Action: "power_on", Device: "all"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	st := res.Status
	if !st.PowerMain || !st.PowerModule1 || !st.PowerModule2 || !st.PowerModule3 {
		t.Fatalf("expected all power keys on: %+v", st)
	}
	if res.Message != "所有电源已开启" {
		t.Fatalf("message = %q", res.Message)
	}

	res, err = svc.Execute(ctx, ControlParams{Action: "power_off", Device: "all"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	st = res.Status
	if st.PowerMain || st.PowerModule1 || st.PowerModule2 || st.PowerModule3 {
		t.Fatalf("expected all power keys off: %+v", st)
	}
	if res.Message != "所有电源已关闭" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestExecute_PowerOffSingleModuleLeavesOthers(t *testing.T) {
	svc, _, _ := newControl(t)
	ctx := context.Background()

	if _, err := svc.Execute(ctx, ControlParams{Action: "power_on", Device: "module2"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	res, err := svc.Execute(ctx, ControlParams{Action: "power_off", Device: "module2"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	st := res.Status
	if st.PowerModule2 {
		t.Fatalf("module2 should be off")
	}
	if !st.PowerMain || !st.PowerModule1 || !st.PowerModule3 {
		t.Fatalf("other power keys changed: %+v", st)
	}
	if res.Message != "module2电源已关闭" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestExecute_UnknownDeviceCreatesKey(t *testing.T) {
	svc, _, _ := newControl(t)

	res, err := svc.Execute(context.Background(), ControlParams{Action: "power_on", Device: "projector"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if on, ok := res.Status.Power("projector"); !ok || !on {
		t.Fatalf("power_projector not created: %+v", res.Status.ExtraPower)
	}
	if res.Message != "projector电源已开启" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestExecute_NonPowerActionsDoNotChangeState(t *testing.T) {
	cases := []struct {
		action string
		want   string
	}{
		{"reset", "设备重置完成"},
		{"calibrate", "设备校准完成"},
		{"blink", "执行操作: blink"},
		{"", "执行操作: "},
	}
	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			svc, _, _ := newControl(t)
			before, _ := svc.store.Load(context.Background())

			res, err := svc.Execute(context.Background(), ControlParams{Action: tc.action, Device: "module1", Value: 3})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.Message != tc.want {
				t.Fatalf("message = %q, want %q", res.Message, tc.want)
			}
			if res.Status.PowerModule1 != before.PowerModule1 || res.Status.PowerModule2 != before.PowerModule2 ||
				len(res.Status.ExtraPower) != 0 {
				t.Fatalf("state changed: before=%+v after=%+v", before, res.Status)
			}
		})
	}
}

func TestExecute_RecordsAndPublishesEvent(t *testing.T) {
	svc, ev, pub := newControl(t)

	res, err := svc.Execute(context.Background(), ControlParams{Action: "calibrate", Device: "module3", Value: "fine"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ev.events) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(ev.events))
	}
	got := ev.events[0]
	if got.EventID == "" || got.OccurredAt.IsZero() {
		t.Fatalf("event id/time not set: %+v", got)
	}
	if got.Action != "calibrate" || got.Device != "module3" || got.Value != "fine" || got.Message != "设备校准完成" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if res.Event.EventID != got.EventID {
		t.Fatalf("result event differs from stored one")
	}
	if len(pub.controls) != 1 || pub.controls[0].EventID != got.EventID {
		t.Fatalf("event not published: %+v", pub.controls)
	}
}

func TestExecute_RecordFailuresDoNotFailRequest(t *testing.T) {
	ev := &localEventRepo{appendErr: errBoom}
	pub := &fakePublisher{err: errBoom}
	svc := NewControlService(newStore(), ev, pub, 0, nil)

	res, err := svc.Execute(context.Background(), ControlParams{Action: "power_off", Device: "main"})
	if err != nil {
		t.Fatalf("Execute should succeed, got %v", err)
	}
	if res.Status.PowerMain {
		t.Fatalf("state should still be applied")
	}
}

func TestExecute_WaitsDelay(t *testing.T) {
	svc, _, _ := newControl(t)
	svc.SetDelay(40 * time.Millisecond)

	start := time.Now()
	if _, err := svc.Execute(context.Background(), ControlParams{Action: "reset"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("returned after %v, expected at least 40ms", elapsed)
	}
}

func TestExecute_CanceledDuringDelay(t *testing.T) {
	svc, _, _ := newControl(t)
	svc.SetDelay(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Execute(ctx, ControlParams{Action: "power_on", Device: "all"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	st, _ := svc.store.Load(context.Background())
	if !st.PowerModule2 {
		t.Fatalf("state change is applied before the delay")
	}
}

func TestSetDelay_ClampsNegative(t *testing.T) {
	svc, _, _ := newControl(t)
	svc.SetDelay(-time.Second)
	if svc.Delay() != 0 {
		t.Fatalf("Delay = %v, want 0", svc.Delay())
	}
	svc.SetDelay(DefaultControlDelay)
	if svc.Delay() != 500*time.Millisecond {
		t.Fatalf("Delay = %v", svc.Delay())
	}
}

func TestNewService_WiresEverything(t *testing.T) {
	ev := &localEventRepo{}
	s := NewService(repositoryFixture{store: newStore(), events: ev}.repos(), Options{})
	if s.Status == nil || s.Devices == nil || s.Environment == nil || s.Safety == nil ||
		s.Control == nil || s.EventLog == nil || s.Telemetry == nil {
		t.Fatalf("service not fully wired: %+v", s)
	}
	res, err := s.Control.Execute(context.Background(), ControlParams{Action: "power_off", Device: models.DeviceMain})
	if err != nil || res.Status.PowerMain {
		t.Fatalf("control through aggregate failed: %v %+v", err, res.Status)
	}
}
