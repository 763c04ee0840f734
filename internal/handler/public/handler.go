package public

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/handler"
	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/middleware"
	tipService "github.com/mobimama/mobimama-api/internal/service/tip"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/httputil"
)

// Handler serves the unauthenticated surface: tips, translations and audio.
type Handler struct {
	tips     tipService.TipServicer
	bundle   *i18n.Bundle
	audioDir string
}

func NewHandler(tips tipService.TipServicer, bundle *i18n.Bundle, audioDir string) *Handler {
	return &Handler{tips: tips, bundle: bundle, audioDir: audioDir}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tips", h.ListTips)
	r.GET("/tips/:id", h.GetTip)
	r.GET("/translations", h.Translations)
}

// RegisterAudioRoute mounts audio serving outside the API prefix.
func (h *Handler) RegisterAudioRoute(r *gin.Engine) {
	r.GET("/audio/:filename", h.ServeAudio)
}

// ListTips returns published tips in the request language, newest first.
func (h *Handler) ListTips(c *gin.Context) {
	lang := middleware.LanguageFrom(c)
	tips, err := h.tips.ListPublicTips(c.Request.Context(), lang)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"language": lang, "tips": tips})
}

func (h *Handler) GetTip(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	tip, err := h.tips.GetTip(c.Request.Context(), id)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, tip)
}

// Translations returns the UI dictionary for the request language.
func (h *Handler) Translations(c *gin.Context) {
	lang := middleware.LanguageFrom(c)
	httputil.OK(c, gin.H{"language": lang, "strings": h.bundle.Dict(lang)})
}

// ServeAudio streams a tip's audio file. The filename is confined to the
// audio directory: anything that resolves outside it is refused.
func (h *Handler) ServeAudio(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		httputil.Fail(c, apperror.Validation("invalid filename"))
		return
	}

	path := filepath.Join(h.audioDir, name)
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
