package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"
)

// fixedRandom always returns v.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func newStore() *repository.StatusMemory {
	return repository.NewStatusMemory(models.DefaultDeviceStatus())
}

type localEventRepo struct {
	mu        sync.Mutex
	appendErr error
	events    []models.ControlEvent
	listErr   error

	lastFrom   time.Time
	lastTo     time.Time
	lastAction string
}

func (f *localEventRepo) Append(ctx context.Context, e models.ControlEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *localEventRepo) List(ctx context.Context, from, to time.Time, action string) ([]models.ControlEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFrom, f.lastTo, f.lastAction = from, to, action
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.ControlEvent
	for _, e := range f.events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	statuses []models.DeviceStatus
	controls []models.ControlEvent
	err      error
}

func (p *fakePublisher) PublishStatus(ctx context.Context, st models.DeviceStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, st)
	return p.err
}

func (p *fakePublisher) PublishControl(ctx context.Context, ev models.ControlEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls = append(p.controls, ev)
	return p.err
}

func (p *fakePublisher) statusCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.statuses)
}

var errBoom = errors.New("boom")

type repositoryFixture struct {
	store  *repository.StatusMemory
	events *localEventRepo
}

func (f repositoryFixture) repos() *repository.Repository {
	return &repository.Repository{StatusStore: f.store, EventRepo: f.events}
}
