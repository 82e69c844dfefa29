package helper

import (
	"log"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals key; when true, 500 responses carry the underlying error text.
const LocExposeErrors = "expose_errors"

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = fiber.NewError(status).Message
		}
	}
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// JsonValidationError: 400 with one message per field.
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:  joinFieldErrors(fieldErrors),
		Errors: fieldErrors,
	})
}

// JsonInternalError logs err and answers 500; the detail is only exposed outside production.
func JsonInternalError(c *fiber.Ctx, message string, err error) error {
	if strings.TrimSpace(message) == "" {
		message = "Something went wrong"
	}
	log.Printf("[ERROR] %s %s: %s: %v", c.Method(), c.Path(), message, err)

	resp := ErrorResponse{Error: message}
	if expose, _ := c.Locals(LocExposeErrors).(bool); expose && err != nil {
		resp.Message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonOK: response sukses generic
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func joinFieldErrors(fieldErrors map[string]string) string {
	if len(fieldErrors) == 0 {
		return "Validation failed"
	}
	fields := make([]string, 0, len(fieldErrors))
	for f := range fieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fieldErrors[f])
	}
	return strings.Join(parts, "; ")
}
