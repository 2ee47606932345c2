package voice

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

type Handler struct {
	transcriber *Transcriber
	extractor   *Extractor
}

func NewHandler(transcriber *Transcriber, extractor *Extractor) *Handler {
	return &Handler{transcriber: transcriber, extractor: extractor}
}

// RegisterRoutes mounts the voice endpoints. limits wrap the two routes that
// call the provider.
func (h *Handler) RegisterRoutes(api *echo.Group, limits ...echo.MiddlewareFunc) {
	api.POST("/transcribe", h.Transcribe, limits...)
	api.POST("/map/:section", h.Map, limits...)
	api.GET("/reference/:section", h.Reference)
	api.GET("/health/voice", h.Health)
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

type MapRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (h *Handler) Transcribe(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	// Read one byte past the limit so oversize uploads are detectable.
	audio, err := io.ReadAll(io.LimitReader(f, MaxAudioBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}

	text, err := h.transcriber.Transcribe(c.Request().Context(), fh.Filename, audio, c.FormValue("language"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, TranscribeResponse{Text: text})
}

func (h *Handler) Map(c echo.Context) error {
	var req MapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperr.HTTP(apperr.Validation("text is required"))
	}

	out, err := h.extractor.Extract(c.Request().Context(), c.Param("section"), req.Text, req.Language)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Reference(c echo.Context) error {
	out, err := h.extractor.Reference(c.Param("section"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, out)
}

// Health reports which providers are configured. It never calls them.
func (h *Handler) Health(c echo.Context) error {
	status := "ok"
	if !h.transcriber.Enabled() || !h.extractor.Enabled() {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
		"transcription": map[string]interface{}{
			"enabled": h.transcriber.Enabled(),
			"model":   h.transcriber.Model(),
		},
		"extraction": map[string]interface{}{
			"enabled":  h.extractor.Enabled(),
			"model":    h.extractor.Model(),
			"sections": h.extractor.catalog.Names(),
		},
	})
}
