package repository

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"attendance_backend/internals/features/attendance/attendance/model"
	"attendance_backend/internals/helpers/dbtime"
)

type capturedQuery struct {
	sql  string
	vars []any
}

// newDryRunRepo builds statements with the postgres dialect without touching a server.
func newDryRunRepo(t *testing.T) (*GormAttendanceRepository, *capturedQuery) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=app dbname=attendance sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	captured := &capturedQuery{}
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		captured.sql = tx.Statement.SQL.String()
		captured.vars = append([]any(nil), tx.Statement.Vars...)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return NewAttendanceRepository(db), captured
}

func TestGormAttendanceRepository_ListSQL(t *testing.T) {
	repo, q := newDryRunRepo(t)
	wib := time.FixedZone("WIB", 7*3600)
	userID := uuid.New()

	f := Filter{
		UserID:   &userID,
		Statuses: []model.Status{model.StatusPresent, model.StatusLate},
		Order:    OldestFirst,
	}.InMonth(dbtime.Month{Year: 2026, Month: time.March}, wib)

	if _, err := repo.List(context.Background(), f); err != nil {
		t.Fatalf("List: %v", err)
	}

	for _, want := range []string{
		`FROM "attendances"`,
		"user_id = $1",
		"date >= $2",
		"date <= $3",
		"status = ANY($4)",
		"ORDER BY date ASC,created_at ASC",
	} {
		if !strings.Contains(q.sql, want) {
			t.Fatalf("expected %q in %s", want, q.sql)
		}
	}
	if len(q.vars) != 4 {
		t.Fatalf("expected 4 bound values, got %d: %v", len(q.vars), q.vars)
	}
	if q.vars[1] != "2026-03-01" || q.vars[2] != "2026-03-31" {
		t.Fatalf("date bounds must bind as plain YYYY-MM-DD, got %v %v", q.vars[1], q.vars[2])
	}

	arr, ok := q.vars[3].(driver.Valuer)
	if !ok {
		t.Fatalf("status set must bind as a driver array, got %T", q.vars[3])
	}
	v, err := arr.Value()
	if err != nil {
		t.Fatalf("array Value: %v", err)
	}
	if v != "{\"PRESENT\",\"LATE\"}" {
		t.Fatalf("unexpected array literal %v", v)
	}
}

func TestGormAttendanceRepository_ListSQL_NewestFirstWithoutFilters(t *testing.T) {
	repo, q := newDryRunRepo(t)

	if _, err := repo.List(context.Background(), Filter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if strings.Contains(q.sql, "WHERE") {
		t.Fatalf("unexpected WHERE in %s", q.sql)
	}
	if !strings.Contains(q.sql, "ORDER BY date DESC,created_at DESC") {
		t.Fatalf("expected newest-first ordering in %s", q.sql)
	}
}

func TestGormAttendanceRepository_FindByUserAndDateSQL(t *testing.T) {
	repo, q := newDryRunRepo(t)
	userID := uuid.New()
	// late evening in UTC+7 is still the 11th; the key must not shift to UTC
	day := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	// dry run never scans rows, so no not-found error is raised
	if _, err := repo.FindByUserAndDate(context.Background(), userID, day); err != nil {
		t.Fatalf("FindByUserAndDate: %v", err)
	}
	if !strings.Contains(q.sql, "user_id = $1 AND date = $2") {
		t.Fatalf("unexpected sql %s", q.sql)
	}
	if len(q.vars) < 2 || q.vars[0] != userID || q.vars[1] != "2026-03-11" {
		t.Fatalf("unexpected bound values %v", q.vars)
	}
}
