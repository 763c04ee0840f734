package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/model"
	authService "github.com/mobimama/mobimama-api/internal/service/auth"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/httputil"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	// Logout answers GET too; the original app linked it from navigation.
	r.POST("/logout", h.Logout)
	r.GET("/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.Created(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.OK(c, resp)
}

// AdminLogin serves the separate admin-panel login path.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	resp, err := h.service.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.OK(c, resp)
}

// Logout invalidates the presented session. Always succeeds: logging out
// with a dead token is not an error.
func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			httputil.Fail(c, err)
			return
		}
	}
	httputil.OK(c, gin.H{"logged_out": true})
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
