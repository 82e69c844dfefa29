package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	database "attendance_backend/internals/databases"
	attendanceController "attendance_backend/internals/features/attendance/attendance/controller"
	attendanceRepo "attendance_backend/internals/features/attendance/attendance/repository"
	attendanceService "attendance_backend/internals/features/attendance/attendance/service"
	reportController "attendance_backend/internals/features/attendance/report/controller"
	reportService "attendance_backend/internals/features/attendance/report/service"
	dashboardController "attendance_backend/internals/features/dashboard/controller"
	dashboardService "attendance_backend/internals/features/dashboard/service"
	authController "attendance_backend/internals/features/users/auth/controller"
	authService "attendance_backend/internals/features/users/auth/service"
	userRepo "attendance_backend/internals/features/users/user/repository"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/metrics"
	middlewares "attendance_backend/internals/middlewares"
	"attendance_backend/internals/middlewares/request"
	routes "attendance_backend/internals/route"
	"attendance_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[ERROR] config: %v", err)
	}

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer database.Close(db)
	database.TunePool(db)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	now := time.Now

	// 🌱 go run . seed
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(context.Background(), db, cfg.Location, now); err != nil {
			log.Fatalf("[ERROR] seed: %v", err)
		}
		log.Println("✅ Seeding finished")
		return
	}
	database.WarmUpQueries(db)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	middlewares.SetupMiddlewares(app, cfg)
	app.Use(request.RequestContext(request.DefaultTimeout, !cfg.IsProduction()))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	m := metrics.New()
	app.Use(m.Middleware())

	deps, closeRevoker, err := buildDeps(cfg, db, m, now)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer closeRevoker()

	// ✅ Routes
	routes.SetupRoutes(app, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on %s (%s, tz=%s)", cfg.Addr(), cfg.AppEnv, cfg.Location)
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
}

func buildDeps(cfg *configs.Config, db *gorm.DB, m *metrics.Metrics, now func() time.Time) (routes.Deps, func(), error) {
	users := userRepo.NewUserRepository(db)
	records := attendanceRepo.NewAttendanceRepository(db)

	tokens, err := authService.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, now)
	if err != nil {
		return routes.Deps{}, nil, err
	}

	var revoker authService.Revoker = authService.NewBlacklistRevoker(db, now)
	closeRevoker := func() {}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return routes.Deps{}, nil, err
		}
		log.Printf("[INFO] token revocation backed by redis at %s", cfg.RedisAddr)
		revoker = authService.NewRedisRevoker(client, now)
		closeRevoker = func() { _ = client.Close() }
	}

	authSvc := authService.NewAuthService(users, tokens, authService.NewPasswordHasher(0), revoker)
	ledger := attendanceService.NewLedgerService(records, users, cfg.Location, now)
	reports := reportService.NewReportService(records, cfg.Location, now)
	dashboards := dashboardService.NewDashboardService(records, users, cfg.Location, now)

	return routes.Deps{
		DB:            db,
		Metrics:       m,
		Authenticator: authSvc,
		Auth:          authController.NewAuthController(authSvc, m, cfg.IsProduction()),
		Attendance:    attendanceController.NewAttendanceController(ledger, m),
		Reports:       reportController.NewReportController(reports),
		Dashboard:     dashboardController.NewDashboardController(dashboards),
	}, closeRevoker, nil
}
