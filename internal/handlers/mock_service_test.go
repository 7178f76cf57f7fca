package handlers

import (
	"context"
	"testing"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository"
	"sslab_simulator/internal/repository/db"
	"sslab_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockStatus struct {
	st      models.DeviceStatus
	err     error
	panics  bool
	samples int
}

func (m *mockStatus) Sample(ctx context.Context) (models.DeviceStatus, error) {
	if m.panics {
		panic("sensor bus exploded")
	}
	m.samples++
	return m.st, m.err
}

func (m *mockStatus) Current(ctx context.Context) (models.DeviceStatus, error) {
	return m.st, m.err
}

type mockDevices struct {
	list models.DeviceList
	err  error
}

func (m *mockDevices) List(ctx context.Context) (models.DeviceList, error) {
	return m.list, m.err
}

type mockControl struct {
	res   service.ControlResult
	err   error
	last  service.ControlParams
	calls int
	delay time.Duration
}

func (m *mockControl) Execute(ctx context.Context, p service.ControlParams) (service.ControlResult, error) {
	m.calls++
	m.last = p
	return m.res, m.err
}

func (m *mockControl) SetDelay(d time.Duration) { m.delay = d }

type mockEventLog struct {
	resp       []models.ControlEvent
	err        error
	lastFrom   time.Time
	lastTo     time.Time
	lastAction string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastAction = f.Action
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newLiveRouter wires the real services over an in-memory SQLite event log,
// a fixed random source and no control delay.
func newLiveRouter(t *testing.T, rnd service.Random) (*gin.Engine, *service.Service) {
	t.Helper()
	conn, err := db.InitDB(db.SQLite, "")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	s := service.NewService(repository.NewRepository(conn, db.SQLite), service.Options{Random: rnd})
	return newTestRouter(s), s
}

// constRandom always returns v.
type constRandom float64

func (r constRandom) Float64() float64 { return float64(r) }
