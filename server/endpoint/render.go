package endpoint

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/yumlsvg/diagram"
	apperrors "github.com/skillsenselab/yumlsvg/errors"
	"github.com/skillsenselab/yumlsvg/observability"
	"github.com/skillsenselab/yumlsvg/validation"
)

// RenderRequest is the JSON payload accepted by the render endpoint.
type RenderRequest struct {
	// Source is the diagram text, including any // {key:value} directives.
	Source string `json:"source" validate:"required"`
	// Type overrides the default diagram type. A type directive in the
	// source still wins.
	Type string `json:"type" validate:"omitempty,oneof=class usecase activity state deployment package sequence"`
	// Direction overrides the default layout direction.
	Direction string `json:"direction" validate:"omitempty,oneof=TB LR RL"`
	// Dark selects the dark color scheme.
	Dark bool `json:"dark"`
	// Layout names the Graphviz layout algorithm, default dot.
	Layout string `json:"layout"`
	// HeaderOverrides are DOT header attributes passed verbatim to the
	// theme wrap.
	HeaderOverrides map[string]string `json:"header_overrides"`
}

// RenderResponse is the JSON envelope returned when the client accepts JSON.
type RenderResponse struct {
	SVG string `json:"svg"`
}

// Render returns the diagram rendering handler.
//
// Two request shapes are accepted: a JSON body (RenderRequest), or a raw
// text/plain diagram with options in query parameters. The response is raw
// SVG when the client accepts image/svg+xml, a JSON envelope otherwise.
func Render(renderer *diagram.Renderer, defaults diagram.Request, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if metrics != nil {
			metrics.RecordRequestStart(c.Request.Context())
		}

		req, err := decodeRenderRequest(c, defaults)
		if err != nil {
			respondError(c, err, metrics, start)
			return
		}

		svg, err := renderer.RenderString(c.Request.Context(), req.source, req.request)
		if err != nil {
			respondError(c, err, metrics, start)
			return
		}

		if metrics != nil {
			metrics.RecordRequestEnd(c.Request.Context(), "yumlsvgd", "POST /v1/render", "ok", time.Since(start))
		}
		if acceptsSVG(c) {
			c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": RenderResponse{SVG: svg}})
	}
}

type decodedRender struct {
	source  string
	request diagram.Request
}

func decodeRenderRequest(c *gin.Context, defaults diagram.Request) (decodedRender, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "text/plain") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return decodedRender{}, apperrors.Stream(err)
		}
		req := RenderRequest{
			Source:    string(body),
			Type:      c.Query("type"),
			Direction: c.Query("direction"),
			Dark:      c.Query("dark") == "true" || c.Query("dark") == "1",
			Layout:    c.Query("layout"),
		}
		if err := validation.New().
			Required("source", req.Source).
			OneOf("type", req.Type, diagram.KnownTypes()).
			OneOf("direction", req.Direction, []string{"TB", "LR", "RL"}).
			Validate(); err != nil {
			return decodedRender{}, err
		}
		return applyOverrides(req, defaults), nil
	}

	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return decodedRender{}, apperrors.InvalidInput("request body must be valid JSON").WithCause(err)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return decodedRender{}, err
	}
	return applyOverrides(req, defaults), nil
}

func applyOverrides(req RenderRequest, defaults diagram.Request) decodedRender {
	out := defaults
	if req.Type != "" {
		out.Options.Type = diagram.DiagramType(req.Type)
	}
	if req.Direction != "" {
		out.Options.Dir = diagram.Direction(req.Direction)
	}
	if req.Dark {
		out.Options.IsDark = true
	}
	if req.Layout != "" {
		out.Engine.Layout = req.Layout
	}
	if len(req.HeaderOverrides) > 0 {
		out.Options.DotHeaderOverrides = req.HeaderOverrides
	}
	return decodedRender{source: req.Source, request: out}
}

func acceptsSVG(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "image/svg+xml") || strings.Contains(accept, "image/*")
}

func respondError(c *gin.Context, err error, metrics *observability.Metrics, start time.Time) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if metrics != nil {
		metrics.RecordRequestEnd(c.Request.Context(), "yumlsvgd", "POST /v1/render", string(appErr.Code), time.Since(start))
		metrics.RecordError(c.Request.Context(), string(appErr.Code), "render-endpoint")
	}
	observability.SetSpanError(c.Request.Context(), appErr)
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}
