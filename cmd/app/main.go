package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/wichananm65/image-price-checker/internal/checker"
	"github.com/wichananm65/image-price-checker/internal/config"
	"github.com/wichananm65/image-price-checker/internal/database"
	"github.com/wichananm65/image-price-checker/internal/detection/opencv"
	"github.com/wichananm65/image-price-checker/internal/logger"
	"github.com/wichananm65/image-price-checker/internal/price"
)

func main() {
	os.Exit(run())
}

// run owns every resource so its deferred cleanup finishes before main exits.
func run() int {
	_ = godotenv.Load()
	cfg := config.Load()

	appLogger, err := logger.New(cfg.LogDir)
	if err != nil {
		log.Printf("Failed to set up logging: %v", err)
		return 1
	}
	defer appLogger.Close()

	// the model is loaded once; without it there is nothing to serve
	detector, err := opencv.Load(cfg, appLogger)
	if err != nil {
		appLogger.Error("Error loading detection model: %v", err)
		return 1
	}
	defer detector.Close()

	db, err := openDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("Invalid database settings: %v", err)
		return 1
	}
	defer db.Close()

	app := fiber.New(fiber.Config{
		AppName:   "Image Price Checker",
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})
	setupMiddleware(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	priceService := price.NewService(price.NewPostgresRepository(db), appLogger)
	priceHandler := price.NewHandler(priceService)
	priceHandler.RegisterPublicRoutes(app)

	checkerService := checker.NewService(detector, priceService)
	checkerHandler := checker.NewHandler(checkerService, cfg.TempDir, cfg.Currency, appLogger)
	checkerHandler.RegisterPublicRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Warning("Shutdown: %v", err)
		}
	}()

	appLogger.Info("Starting server on %s (model %s)", cfg.Addr, cfg.ModelPath)
	if err := app.Listen(cfg.Addr); err != nil {
		appLogger.Error("Server stopped: %v", err)
		return 1
	}
	return 0
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

// openDB fails only on invalid settings. An unreachable server is logged and
// lookups degrade to "no price" until it comes back.
func openDB(cfg *config.Config, appLogger *logger.Logger) (*sql.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(context.Background(), db); err != nil {
		appLogger.Warning("Database not reachable at startup: %v", err)
	} else {
		appLogger.Info("Connected to database %s on %s", cfg.DBName, cfg.DBHost)
	}
	return db, nil
}
