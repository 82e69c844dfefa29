package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/items/:id", "204")); got != 2 {
		t.Fatalf("expected 2 requests counted under the route pattern, got %v", got)
	}

	m.ObserveAttendance("checkin", "LATE")
	if got := testutil.ToFloat64(m.attendance.WithLabelValues("checkin", "LATE")); got != 1 {
		t.Fatalf("expected 1 attendance event, got %v", got)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "attendance_events_total") {
		t.Fatalf("exposition missing attendance counter:\n%s", body)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAttendance("checkout", "PRESENT")
	m.ObserveLogin("success")
}
