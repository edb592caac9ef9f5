package api

import (
	"time"

	"farm-advisor/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *Handler, sessions *services.SessionStore, sessionTTL time.Duration, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/health", handler.GetHealth)
	api.Get("/metrics", handler.GetMetrics)

	// Static lookups
	api.Get("/crops", handler.GetCrops)
	api.Get("/topics", handler.GetTopics)
	api.Get("/tasks", handler.GetTasks)
	api.Get("/severity", handler.GetSeverity)

	// Session-bound view state
	withSession := sessionMiddleware(sessions, sessionTTL)
	api.Get("/state", withSession, handler.GetState)
	api.Post("/analysis", withSession, handler.SubmitAnalysis)
	api.Post("/topics/:key/toggle", withSession, handler.ToggleTopic)
	api.Post("/language/toggle", withSession, handler.ToggleLanguage)
	api.Post("/bubbles/:name", withSession, handler.ClickBubble)

	// Page
	app.Get("/", withSession, handler.RenderPage)
	app.Post("/analysis", withSession, handler.SubmitForm)
	app.Post("/topics/:key", withSession, handler.SelectTopic)
	app.Post("/language", withSession, handler.SwitchLanguage)
	app.Post("/bubbles/:name", withSession, handler.FollowBubble)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})

	log.Debug("Routes registered")
}
