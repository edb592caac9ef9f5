package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"farm-advisor/internal/i18n"
	"farm-advisor/internal/models"
	"farm-advisor/internal/scheduler"
	"farm-advisor/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	analyzer *services.Analyzer
	sessions *services.SessionStore
	sweeper  *scheduler.Sweeper
	catalog  *i18n.Catalog
	logger   *zap.Logger
}

func NewHandler(analyzer *services.Analyzer, sessions *services.SessionStore, sweeper *scheduler.Sweeper, catalog *i18n.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		sessions: sessions,
		sweeper:  sweeper,
		catalog:  catalog,
		logger:   logger,
	}
}

// GetState handles GET /api/v1/state
func (h *Handler) GetState(c *fiber.Ctx) error {
	state, ok := h.sessions.Get(sessionID(c))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session expired")
	}
	return c.JSON(services.BuildView(state, h.catalog))
}

// SubmitAnalysis handles POST /api/v1/analysis
func (h *Handler) SubmitAnalysis(c *fiber.Ctx) error {
	var form models.FarmFormData
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid form data",
			"details": err.Error(),
		})
	}

	if err := form.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Info("Analyzing farm",
		zap.String("session", sessionID(c)),
		zap.String("location", form.Location),
		zap.String("crop", string(form.CropType)),
		zap.Float64("field_size", form.FieldSize))

	state, err := h.analyzer.Submit(c.Context(), sessionID(c), form)
	if errors.Is(err, services.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "session expired")
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "Analysis failed",
			"notice": state.Notice,
			"view":   services.BuildView(state, h.catalog),
		})
	}

	return c.JSON(services.BuildView(state, h.catalog))
}

// ToggleTopic handles POST /api/v1/topics/:key/toggle
func (h *Handler) ToggleTopic(c *fiber.Ctx) error {
	topic := models.Topic(c.Params("key"))
	if !topic.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown topic",
			"topic": topic,
		})
	}

	state, err := h.sessions.Update(sessionID(c), func(p *models.PageState) { p.ToggleTopic(topic) })
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session expired")
	}

	return c.JSON(services.BuildView(state, h.catalog))
}

// ToggleLanguage handles POST /api/v1/language/toggle
func (h *Handler) ToggleLanguage(c *fiber.Ctx) error {
	state, err := h.sessions.Update(sessionID(c), func(p *models.PageState) { p.ToggleLanguage() })
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session expired")
	}

	return c.JSON(services.BuildView(state, h.catalog))
}

// ClickBubble handles POST /api/v1/bubbles/:name. Bubbles lead nowhere yet.
func (h *Handler) ClickBubble(c *fiber.Ctx) error {
	name := c.Params("name")
	if !services.IsBubble(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown option",
		})
	}

	h.logger.Info("Navigating to", zap.String("bubble", name), zap.String("session", sessionID(c)))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTasks handles GET /api/v1/tasks
func (h *Handler) GetTasks(c *fiber.Ctx) error {
	var topics []models.Topic
	for _, key := range strings.Split(c.Query("topics"), ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		topic := models.Topic(key)
		if !topic.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown topic",
				"topic": topic,
			})
		}
		topics = append(topics, topic)
	}

	return c.JSON(fiber.Map{
		"topics": topics,
		"tasks":  services.ComposeTasks(topics),
	})
}

// GetSeverity handles GET /api/v1/severity
func (h *Handler) GetSeverity(c *fiber.Ctx) error {
	value, err := strconv.ParseFloat(c.Query("value"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Value parameter must be a number",
		})
	}

	return c.JSON(fiber.Map{
		"value":    value,
		"percent":  services.StressPercent(value),
		"severity": services.Classify(value),
	})
}

// GetCrops handles GET /api/v1/crops
func (h *Handler) GetCrops(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"crops": models.CropTypes,
		"field_size": fiber.Map{
			"min":  models.MinFieldSize,
			"max":  models.MaxFieldSize,
			"step": models.FieldSizeStep,
		},
	})
}

// GetTopics handles GET /api/v1/topics
func (h *Handler) GetTopics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"topics": services.TopicBoxes(),
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now(),
		"last_submit": h.analyzer.GetLastSubmitTime(),
		"uptime":      time.Since(startTime).String(),
	})
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics":   h.analyzer.GetStats(),
		"sweeper":   h.sweeper.GetStatus(),
		"timestamp": time.Now(),
	})
}

var startTime = time.Now()
