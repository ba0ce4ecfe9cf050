package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cardatelier/cardforge/backend/config"
	"github.com/cardatelier/cardforge/backend/handlers"
	"github.com/cardatelier/cardforge/backend/middleware"
	webmodels "github.com/cardatelier/cardforge/backend/models"
	webservices "github.com/cardatelier/cardforge/backend/services"
	"github.com/cardatelier/cardforge/cardforge"
	"github.com/cardatelier/cardforge/cardforge/database"
	"github.com/cardatelier/cardforge/cardforge/database/repositories"
	"github.com/cardatelier/cardforge/cardforge/logger"
	"github.com/cardatelier/cardforge/cardforge/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("CardForge-API")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting CardForge API",
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := cardforge.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webCfg := config.NewWebAppConfig(cfg, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	if err := db.CreateTables(ctx); err != nil {
		slog.Error("Failed to create tables", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := db.SeedDefaultTemplates(ctx); err != nil {
		slog.Error("Failed to seed default templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := webmodels.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewTemplateRepository(db.BunDB()),
		repositories.NewCardRepository(db.BunDB()),
	)

	spacesService := services.NewSpacesService(cfg.Spaces)

	sessionService := webservices.NewSessionService(webCfg)
	userService := webservices.NewUserService(repos)
	templateService := webservices.NewTemplateService(repos)
	cardService := webservices.NewCardService(repos)
	exportService := webservices.NewExportService(cardService,
		cfg.Renderer.BaseURL(), cfg.Renderer.RequestTimeout())

	app := fiber.New(fiber.Config{
		AppName:      "CardForge API",
		ServerHeader: "CardForge",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.Web),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:          webCfg,
		DB:              db,
		Repos:           repos,
		SpacesService:   spacesService,
		SessionService:  sessionService,
		UserService:     userService,
		TemplateService: templateService,
		CardService:     cardService,
		ExportService:   exportService,
		Version:         version,
		Commit:          commit,
	}

	setupRoutes(app, webApp)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting API server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down API server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("API server shutdown complete")
}

func allowedOrigins(cfg cardforge.WebConfig) string {
	if len(cfg.AllowedOrigins) == 0 {
		return "http://localhost:3000"
	}
	return strings.Join(cfg.AllowedOrigins, ",")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CardForge API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	auth := app.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	auth.Post("/register", handlers.Register(webApp))
	auth.Post("/login", handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	api := app.Group("/api")

	api.Get("/me", middleware.AuthRequired(webApp.SessionService), handlers.Me(webApp))

	// Templates: listing and detail work without a session (defaults are
	// public); mutations require one.
	templates := api.Group("/templates")
	templates.Get("/", middleware.OptionalAuth(webApp.SessionService), handlers.TemplatesList(webApp))
	templates.Get("/:id", middleware.OptionalAuth(webApp.SessionService), handlers.TemplatesDetail(webApp))
	templates.Post("/", middleware.AuthRequired(webApp.SessionService), handlers.TemplatesCreate(webApp))
	templates.Put("/:id", middleware.AuthRequired(webApp.SessionService), handlers.TemplatesUpdate(webApp))
	templates.Delete("/:id", middleware.AuthRequired(webApp.SessionService), handlers.TemplatesDelete(webApp))

	cards := api.Group("/cards")
	cards.Use(middleware.AuthRequired(webApp.SessionService))
	cards.Get("/", handlers.CardsList(webApp))
	cards.Get("/:id", handlers.CardsDetail(webApp))
	cards.Post("/", handlers.CardsCreate(webApp))
	cards.Put("/:id", handlers.CardsUpdate(webApp))
	cards.Delete("/:id", handlers.CardsDelete(webApp))
	cards.Post("/:id/duplicate", handlers.CardsDuplicate(webApp))
	cards.Get("/:id/preview", handlers.CardsPreview(webApp))
	cards.Get("/:id/export", middleware.ExportRateLimit(), handlers.CardsExport(webApp))

	api.Post("/preview", middleware.AuthRequired(webApp.SessionService), handlers.Preview(webApp))

	assets := api.Group("/assets")
	assets.Use(middleware.AuthRequired(webApp.SessionService))
	assets.Post("/", middleware.UploadRateLimit(), handlers.AssetsUpload(webApp))
	assets.Get("/presign", handlers.AssetsPresign(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
