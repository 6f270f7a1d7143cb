package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/ocr"
	"alfredoptarigan/resume-screener/internal/raster"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// multipartOverhead is the room left in the request body limit for multipart
// headers, so an oversize file reaches the handler's size check.
const multipartOverhead = 1 << 20

func main() {
	cfg, envErr := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Debug("no .env file loaded", zap.Error(envErr))
	}
	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Audit log is optional
	audit := repositories.NewNoopExtractionRepository()
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			log.Fatal("failed to initialize database", zap.Error(err))
		}
		audit = repositories.NewExtractionRepository(db)
	}

	// Initialize services
	extractor := services.NewExtractorService(
		services.NewPDFTextLayer(),
		raster.NewFitzRasterizer(),
		ocr.NewTesseractEngine(cfg.OCR.Language),
		log,
	)
	scorer := services.NewScorerService(cfg.Worker.ScoreConcurrency)
	log.Info("services initialized", zap.String("ocr_language", cfg.OCR.Language))

	pool := services.NewExtractionPool(
		extractor,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	// Initialize Handlers
	h := &handlers.Handlers{
		Upload: handlers.NewUploadHandler(pool, audit, cfg.Upload.MaxFileSize, log),
		Match:  handlers.NewMatchHandler(scorer, validator.New(), config.SkillKeywords),
		Result: handlers.NewResultHandler(audit),
		System: handlers.NewSystemHandler(func() (string, error) {
			return ocr.Version(cfg.OCR.Language)
		}),
	}

	app := fiber.New(fiber.Config{
		AppName:      handlers.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + multipartOverhead,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		<-quit
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
		pool.Stop()
		cancel()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	<-done
	log.Info("server stopped")
}
