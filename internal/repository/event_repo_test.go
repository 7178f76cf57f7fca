package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockArgumentFunc adapts a predicate to sqlmock.Argument.
type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool { return f(v) }

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.SQLite)

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO control_events (id, occurred_at, action, device, message, meta) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), isUTCRecent, "power_on", "all", "所有电源已开启", `{"value":42}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(ctx(t), models.ControlEvent{
		Action:  " power_on ",
		Device:  "all",
		Message: "所有电源已开启",
		Value:   42,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_NilValueStoresNullMeta(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.SQLite)
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))

	mock.ExpectExec("INSERT INTO control_events").
		WithArgs("fixed-id", at.UTC(), "reset", "module1", "设备重置完成", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(ctx(t), models.ControlEvent{
		EventID:    "fixed-id",
		OccurredAt: at,
		Action:     "reset",
		Device:     "module1",
		Message:    "设备重置完成",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.SQLite)

	mock.ExpectExec("INSERT INTO control_events").
		WillReturnError(errors.New("down"))

	err = repo.Append(ctx(t), models.ControlEvent{Action: "calibrate", Message: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_NoFilters_And_MetaParsing(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.SQLite)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "action", "device", "message", "meta"}).
		AddRow("1", now, "power_on", "all", "m1", `{"value":"high"}`).
		AddRow("2", now.Add(time.Hour), "reset", "module1", "m2", nil).
		AddRow("3", now.Add(2*time.Hour), "calibrate", "module3", "m3", "not-json")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, action, device, message, meta FROM control_events ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	if got[0].Value != "high" {
		t.Fatalf("value not decoded: %#v", got[0].Value)
	}
	if got[1].Value != nil {
		t.Fatalf("expected nil value, got %#v", got[1].Value)
	}
	if got[2].Value != "not-json" {
		t.Fatalf("malformed meta should be kept raw, got %#v", got[2].Value)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_FiltersRebindForPostgres(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.Postgres)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, occurred_at, action, device, message, meta FROM control_events WHERE occurred_at >= $1 AND occurred_at <= $2 AND action = $3 ORDER BY occurred_at ASC`)).
		WithArgs(from, to, "power_off").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "action", "device", "message", "meta"}).
			AddRow("9", from.Add(time.Hour), "power_off", "module2", "module2电源已关闭", nil))

	got, err := repo.List(ctx(t), from, to, " power_off ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Device != "module2" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_QueryError(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQL(conn, db.SQLite)
	mock.ExpectQuery("SELECT id").WillReturnError(errors.New("boom"))

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected error")
	}
}
