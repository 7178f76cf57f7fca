package repository

import (
	"context"
	"sync"

	"sslab_simulator/internal/models"
)

// StatusMemory keeps the panel state in process memory. Nothing survives a
// restart. Every read and read-modify-write goes through mu, so concurrent
// control requests are applied one at a time.
type StatusMemory struct {
	mu     sync.Mutex
	status models.DeviceStatus
}

var _ StatusStore = (*StatusMemory)(nil)

func NewStatusMemory(initial models.DeviceStatus) *StatusMemory {
	return &StatusMemory{status: initial.Clone()}
}

// Load returns a copy of the current state.
func (r *StatusMemory) Load(ctx context.Context) (models.DeviceStatus, error) {
	if err := ctx.Err(); err != nil {
		return models.DeviceStatus{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.Clone(), nil
}

// Update mutates the state in place and returns a copy of the result.
func (r *StatusMemory) Update(ctx context.Context, fn func(*models.DeviceStatus)) (models.DeviceStatus, error) {
	if err := ctx.Err(); err != nil {
		return models.DeviceStatus{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.status)
	return r.status.Clone(), nil
}
