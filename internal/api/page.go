package api

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"farm-advisor/internal/models"
	"farm-advisor/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"year": func() int { return time.Now().Year() },
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	services.PageView
	Notice  *models.Notice
	MinSize float64
	MaxSize float64
	Step    float64
}

// RenderPage handles GET /
func (h *Handler) RenderPage(c *fiber.Ctx) error {
	id := sessionID(c)
	notice := h.sessions.TakeNotice(id)

	state, ok := h.sessions.Get(id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session expired")
	}

	data := pageData{
		PageView: services.BuildView(state, h.catalog),
		Notice:   notice,
		MinSize:  models.MinFieldSize,
		MaxSize:  models.MaxFieldSize,
		Step:     models.FieldSizeStep,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// SubmitForm handles POST /analysis from the page's form.
func (h *Handler) SubmitForm(c *fiber.Ctx) error {
	id := sessionID(c)

	var form models.FarmFormData
	err := c.BodyParser(&form)
	if err == nil {
		err = form.Validate()
	}
	if err != nil {
		h.logger.Warn("Rejected form submission", zap.String("session", id), zap.Error(err))
		_, _ = h.sessions.Update(id, func(p *models.PageState) {
			p.Notice = &models.Notice{
				Title:       h.catalog.T(p.Lang, "analysisFail"),
				Description: err.Error(),
				Variant:     models.NoticeDestructive,
			}
		})
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	// Failures are logged and surfaced as a notice by the analyzer.
	_, _ = h.analyzer.Submit(c.Context(), id, form)

	return c.Redirect("/#analysis", fiber.StatusSeeOther)
}

// SelectTopic handles POST /topics/:key from the analysis boxes.
func (h *Handler) SelectTopic(c *fiber.Ctx) error {
	topic := models.Topic(c.Params("key"))
	if topic.Valid() {
		_, _ = h.sessions.Update(sessionID(c), func(p *models.PageState) { p.ToggleTopic(topic) })
	}
	return c.Redirect("/#analysis", fiber.StatusSeeOther)
}

// SwitchLanguage handles POST /language.
func (h *Handler) SwitchLanguage(c *fiber.Ctx) error {
	_, _ = h.sessions.Update(sessionID(c), func(p *models.PageState) { p.ToggleLanguage() })
	return c.Redirect("/", fiber.StatusSeeOther)
}

// FollowBubble handles POST /bubbles/:name.
func (h *Handler) FollowBubble(c *fiber.Ctx) error {
	if name := c.Params("name"); services.IsBubble(name) {
		h.logger.Info("Navigating to", zap.String("bubble", name), zap.String("session", sessionID(c)))
	}
	return c.Redirect("/#more", fiber.StatusSeeOther)
}
