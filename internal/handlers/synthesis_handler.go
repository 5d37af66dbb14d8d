package handlers

import (
	"net/http"
	"strings"

	"github.com/koewave/koewave-backend/internal/tts"
	"github.com/labstack/echo/v4"
)

// SynthesisHandler streams text-to-speech results back to the client as
// they are produced.
type SynthesisHandler struct {
	dispatcher *tts.Dispatcher
	hasAPIKey  bool
}

// NewSynthesisHandler creates a new SynthesisHandler
func NewSynthesisHandler(dispatcher *tts.Dispatcher, hasAPIKey bool) *SynthesisHandler {
	return &SynthesisHandler{dispatcher: dispatcher, hasAPIKey: hasAPIKey}
}

// RegisterSynthesisRoutes registers synthesis-related routes
func (h *SynthesisHandler) RegisterSynthesisRoutes(g *echo.Group) {
	g.POST("/synthesis/stream", h.StreamSynthesis)
}

// SynthesizeRequest defines the request body for streamed synthesis
type SynthesizeRequest struct {
	Text string `json:"text"`
	tts.SynthesisParams
}

// StreamSynthesis segments the submitted text, synthesizes each chunk
// against the external API and pushes one frame per result, framed as
// data: records. The response starts with a metadata frame and always ends
// with a completion sentinel; a failed chunk is reported in place and does
// not end the stream.
func (h *SynthesisHandler) StreamSynthesis(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	if !h.hasAPIKey {
		return echo.NewHTTPError(http.StatusInternalServerError, "synthesis credential not configured")
	}

	chunks := tts.Split(req.Text)

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, "text/plain; charset=utf-8")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	c.Response().WriteHeader(http.StatusOK)

	emitter := tts.NewEmitter(c.Response())
	return h.dispatcher.Stream(c.Request().Context(), chunks, req.SynthesisParams, emitter)
}
