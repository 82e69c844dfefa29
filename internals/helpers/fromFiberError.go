package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber.ErrorHandler: *fiber.Error keeps its code and
// message, anything else becomes a 500 through JsonInternalError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), fe)
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonInternalError(c, "Internal server error", err)
}
