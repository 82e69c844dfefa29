package request

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "attendance_backend/internals/helpers"
)

func TestRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(time.Second, true))
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if _, ok := ctx.Deadline(); !ok {
			return c.Status(fiber.StatusTeapot).SendString("no deadline")
		}
		if expose, _ := c.Locals(helper.LocExposeErrors).(bool); !expose {
			return c.Status(fiber.StatusTeapot).SendString("expose flag missing")
		}
		return c.SendString(RequestID(ctx))
	})

	t.Run("generates id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, body)
		}
		rid := resp.Header.Get(HeaderRequestID)
		if rid == "" || string(body) != rid {
			t.Fatalf("header %q body %q", rid, body)
		}
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
			t.Fatalf("got %q", got)
		}
	})
}
