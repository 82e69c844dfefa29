package request

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	helper "attendance_backend/internals/helpers"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocRequestID    = "request_id"

	DefaultTimeout = 5 * time.Second
)

type requestIDKey struct{}

// RequestContext attaches a request id and a deadline-bound context to every request.
// exposeErrors lets JsonInternalError include the underlying error text.
func RequestContext(timeout time.Duration, exposeErrors bool) fiber.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" || len(rid) > 128 {
			rid = utils.UUIDv4()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(LocRequestID, rid)
		c.Locals(helper.LocExposeErrors, exposeErrors)

		ctx, cancel := context.WithTimeout(context.WithValue(c.UserContext(), requestIDKey{}, rid), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequestID returns the id stored by RequestContext, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}
