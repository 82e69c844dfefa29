// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/features/users/auth/controller"
	rateLimiter "attendance_backend/internals/middlewares"
)

// AuthRoutes mounts /auth under api. protect is the bearer-token gate.
func AuthRoutes(api fiber.Router, authController *controller.AuthController, protect fiber.Handler) {
	// ==========================
	// Base: /api/auth
	// ==========================
	baseAuth := api.Group("/auth")

	// 🔓 Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔒 Protected
	baseAuth.Get("/me", protect, authController.Me)
	baseAuth.Post("/logout", protect, authController.Logout)
}
