package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"attendance_backend/internals/configs"
	"attendance_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global (urutan penting: recover paling luar)
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(strings.Split(cfg.CORSOrigins, ",")))
	app.Use(logger.LoggerMiddleware(cfg.Timezone))
}
