package domain

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/components/header"
	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
)

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Logger: logger}
}

// NewLayoutData fills the shared layout fields from the request.
func (h *BaseHandler) NewLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.PrimaryNav,
		ActiveNav: activeNav,
		User:      middleware.GetSessionUser(c),
	}
}

func (h *BaseHandler) render(c *gin.Context, status int, name string, component templ.Component) {
	start := time.Now()
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := component.Render(c.Request.Context(), c.Writer)
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("template", name)))
	if err != nil {
		h.Logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
	}
}

// RenderPage renders the full document, or only the content for HTMX navigations.
func (h *BaseHandler) RenderPage(c *gin.Context, layout models.LayoutTempl, nav templ.Component) {
	if c.GetHeader("HX-Request") == "true" {
		h.render(c, http.StatusOK, "content", layout.Content)
		return
	}
	h.render(c, http.StatusOK, "page", header.Page(layout, nav))
}

// RenderFragment renders a partial such as the navbar swap target.
func (h *BaseHandler) RenderFragment(c *gin.Context, status int, name string, component templ.Component) {
	h.render(c, status, name, component)
}
