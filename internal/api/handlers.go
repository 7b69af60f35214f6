package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/citationgen/internal/assets"
	"github.com/youruser/citationgen/internal/citation"
	imagepkg "github.com/youruser/citationgen/internal/image"
	"github.com/youruser/citationgen/internal/params"
	"github.com/youruser/citationgen/internal/presets"
)

// Handler serves citations over HTTP.
type Handler struct {
	store    *assets.Store
	presets  presets.Catalogue
	renderer *citation.Renderer
	baseURL  string
	log      *slog.Logger
}

// NewHandler returns a handler rendering with store. baseURL prefixes the
// links encoded in share QR codes.
func NewHandler(store *assets.Store, catalogue presets.Catalogue, baseURL string, log *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		presets:  catalogue,
		renderer: citation.NewRenderer(store),
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// citationPNG renders a still from query parameters.
func (h *Handler) citationPNG(c *gin.Context) {
	var opt params.Options
	if err := c.ShouldBindQuery(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opt.GIF = false
	h.render(c, opt)
}

// citationGIF renders the animation from query parameters.
func (h *Handler) citationGIF(c *gin.Context) {
	var opt params.Options
	if err := c.ShouldBindQuery(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opt.GIF = true
	h.render(c, opt)
}

// citationJSON renders from a JSON body; "gif": true selects the animation.
func (h *Handler) citationJSON(c *gin.Context) {
	var opt params.Options
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.render(c, opt)
}

// listPresets returns the preset catalogue.
func (h *Handler) listPresets(c *gin.Context) {
	out := make([]presets.Preset, 0, len(h.presets))
	for _, name := range h.presets.Names() {
		out = append(out, h.presets[strings.ToLower(name)])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "presets": out})
}

// data resolves opt's preset and builds the citation.
func (h *Handler) data(opt params.Options) (*citation.Data, error) {
	opt, err := h.presets.Apply(opt)
	if err != nil {
		return nil, err
	}
	return opt.Data(h.store.Font())
}

func (h *Handler) render(c *gin.Context, opt params.Options) {
	d, err := h.data(opt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opt.GIF {
		b, err := h.renderer.RenderGIF(d)
		if err != nil {
			h.log.Error("render gif", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/gif", b)
		return
	}
	b, err := imagepkg.EncodePNG(h.renderer.Render(d))
	if err != nil {
		h.log.Error("render png", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// ShareURL returns the link that renders opt.
func (h *Handler) ShareURL(opt params.Options) string {
	path := "/api/citation.png"
	if opt.GIF {
		path = "/api/citation.gif"
	}
	q := opt.Query().Encode()
	if q == "" {
		return h.baseURL + path
	}
	return h.baseURL + path + "?" + q
}

// qrHandler returns a PNG QR code linking to the citation described by the
// query parameters. "size" sets the side length in pixels.
func (h *Handler) qrHandler(c *gin.Context) {
	var opt params.Options
	if err := c.ShouldBindQuery(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.data(opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size := 256
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(h.ShareURL(opt), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
