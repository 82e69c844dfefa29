package details

import (
	"github.com/gofiber/fiber/v2"

	authController "attendance_backend/internals/features/users/auth/controller"
	authRoute "attendance_backend/internals/features/users/auth/route"
)

func AuthRoutes(api fiber.Router, ctl *authController.AuthController, protect fiber.Handler) {
	authRoute.AuthRoutes(api, ctl, protect)
}
