package repository

import (
	"context"
	"database/sql"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository/db"
)

// StatusStore owns the single DeviceStatus of the panel.
type StatusStore interface {
	Load(ctx context.Context) (models.DeviceStatus, error)
	// Update applies fn under the store lock and returns the resulting snapshot.
	Update(ctx context.Context, fn func(*models.DeviceStatus)) (models.DeviceStatus, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, from, to time.Time, action string) ([]models.ControlEvent, error)
}

type Repository struct {
	StatusStore StatusStore
	EventRepo   EventRepo
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		StatusStore: NewStatusMemory(models.DefaultDeviceStatus()),
		EventRepo:   NewEventSQL(conn, dialect),
	}
}
