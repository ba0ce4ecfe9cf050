package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cardatelier/cardforge/cardforge"
	"github.com/cardatelier/cardforge/cardforge/logger"
	"github.com/cardatelier/cardforge/cardforge/render"
	"github.com/cardatelier/cardforge/cardforge/services"
)

var version = "dev"

// renderRequest mirrors the body the API posts for one export.
type renderRequest struct {
	Template struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Front json.RawMessage `json:"front"`
		Back  json.RawMessage `json:"back"`
	} `json:"template"`
	CardData json.RawMessage `json:"cardData"`
	Format   string          `json:"format"`
}

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("CardForge-Renderer")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting CardForge rendering service",
		slog.String("version", version))

	host := ""
	port := 3002
	if cfg, err := cardforge.LoadConfig(configPath); err == nil {
		if cfg.Renderer.Port > 0 {
			port = cfg.Renderer.Port
		}
		host = cfg.Renderer.Host
	} else {
		slog.Warn("Config not loaded, using defaults", slog.String("error", err.Error()))
	}

	rasterizer := services.NewRasterizer()

	app := fiber.New(fiber.Config{
		AppName:      "CardForge Renderer",
		ServerHeader: "CardForge-Renderer",
		BodyLimit:    50 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Baseball Card Rendering Service",
			"version": version,
			"endpoints": fiber.Map{
				"health": "GET /health",
				"render": "POST /render",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/render", handleRender(rasterizer))

	address := fmt.Sprintf("%s:%d", host, port)
	slog.Info("Rendering service listening", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down rendering service...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
}

func handleRender(rasterizer *services.Rasterizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renderRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if len(req.Template.Front) == 0 || len(req.Template.Back) == 0 || len(req.CardData) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing template or cardData",
			})
		}

		format := req.Format
		if format == "" {
			format = "png"
		}
		rasterFormat, err := services.ParseRasterFormat(format)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		tpl, err := render.ParseTemplate(req.Template.ID, req.Template.Name,
			req.Template.Front, req.Template.Back)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Malformed template",
				"message": err.Error(),
			})
		}
		data, err := render.ParseCardData(req.CardData)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Malformed cardData",
				"message": err.Error(),
			})
		}

		sheet := render.Compose(tpl, data)
		result, err := rasterizer.Rasterize(c.Context(), sheet, rasterFormat)
		if err != nil {
			slog.Error("Rendering error", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to render card",
				"message": err.Error(),
			})
		}

		c.Set(fiber.HeaderContentType, rasterFormat.ContentType())
		return c.Send(result)
	}
}
