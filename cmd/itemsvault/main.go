package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"itemsvault/internal/config"
	"itemsvault/internal/http/handlers"
	applog "itemsvault/internal/log"
	"itemsvault/internal/mail"
	"itemsvault/internal/repos"
	"itemsvault/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Upload adapter: local disk unless object storage is configured.
	var files storage.Store
	localMode := !cfg.UseObjectStorage()
	if localMode {
		local, err := storage.NewLocal(cfg.UploadsDir)
		if err != nil {
			log.Fatal(err)
		}
		files = local
	} else {
		s3, err := storage.NewS3(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Folder:    cfg.S3Folder,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			log.Fatal(err)
		}
		files = s3
	}

	mailer := mail.New(cfg)

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Cover plus ten gallery images at 5 MB each, with form overhead.
	app.Server().MaxRequestBodySize = 64 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	uploadsDir := cfg.UploadsDir
	if !filepath.IsAbs(uploadsDir) {
		if abs, err := filepath.Abs(uploadsDir); err == nil {
			uploadsDir = abs
		}
	}
	if localMode {
		log.Printf("[static] /uploads -> %s", uploadsDir)
		// Guarded uploads to avoid traversal
		app.Get("/uploads/*", func(c *fiber.Ctx) error {
			path := c.Params("*")
			rawLower := strings.ToLower(path)
			if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
				applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
				return c.SendStatus(fiber.StatusNotFound)
			}
			clean := filepath.Clean(path)
			if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
				applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
				return c.SendStatus(fiber.StatusNotFound)
			}
			full := filepath.Join(uploadsDir, clean)
			return c.SendFile(full, true)
		})
	}

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, files, mailer)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ItemsVault backend is running",
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Pages
	app.Get("/items", deps.PageHandler.List)
	app.Get("/items/new", deps.PageHandler.New)
	app.Get("/items/:id", deps.PageHandler.Detail)

	// API
	api := app.Group("/api")
	api.Get("/items", deps.ItemHandler.ListAPI)
	api.Post("/items", deps.ItemHandler.CreateAPI)
	enquiryLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|enquiry"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.enquiry.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "rate limit exceeded, retry soon", "success": false})
		},
	})
	api.Post("/items/enquiry", enquiryLimiter, deps.EnquiryHandler.Send)
	api.Get("/items/:id", deps.ItemHandler.GetAPI)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Server gracefully stopped")
}
