package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// The language model is loaded once and shared by every analysis.
	annotator, err := services.LoadAnnotator(cfg.NLP.ModelPath)
	if err != nil {
		log.Fatalf("❌ Failed to load language model: %v", err)
	}

	// Initialize services
	parser := services.NewDocumentParserService()
	entities := services.NewEntityExtractorService(annotator)
	scorer := services.NewSimilarityScorer()
	analyzer := services.NewAnalyzerService(parser, entities, scorer)
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(
		analyzer,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		worker,
		cfg.Upload.MaxFileSize,
		cfg.Worker.AnalysisTimeout,
	)
	healthHandler := handlers.NewHealthHandler(annotator)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Worker.AnalysisTimeout + 10*time.Second,
		// Room for the multipart envelope and the job description.
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, analyzeHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		worker.Stop()
		cancel()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	if cfg.IsDevelopment() {
		log.Printf("⚙️  Workers: %d, queue: %d, timeout: %s, max upload: %d bytes\n",
			cfg.Worker.Concurrency, cfg.Worker.QueueSize, cfg.Worker.AnalysisTimeout, cfg.Upload.MaxFileSize)
	}

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
