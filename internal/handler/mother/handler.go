package mother

import (
	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/middleware"
	"github.com/mobimama/mobimama-api/internal/model"
	appointmentService "github.com/mobimama/mobimama-api/internal/service/appointment"
	assistantService "github.com/mobimama/mobimama-api/internal/service/assistant"
	tipService "github.com/mobimama/mobimama-api/internal/service/tip"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/httputil"
)

// Handler serves the signed-in mother surface.
type Handler struct {
	tips         tipService.TipServicer
	appointments appointmentService.AppointmentServicer
	assistant    assistantService.AssistantServicer
}

func NewHandler(tips tipService.TipServicer, appointments appointmentService.AppointmentServicer, assistant assistantService.AssistantServicer) *Handler {
	return &Handler{tips: tips, appointments: appointments, assistant: assistant}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/appointments", h.ListAppointments)
	r.POST("/appointments", h.BookAppointment)
	r.POST("/ask-mobi", h.AskMobi)
}

// Dashboard returns the mother landing data: a short tips preview and the
// mother's own appointments.
func (h *Handler) Dashboard(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	tips, err := h.tips.ListDashboardTips(c.Request.Context())
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	appointments, err := h.appointments.ListForMother(c.Request.Context(), actor.Username)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.OK(c, gin.H{
		"username":     actor.Username,
		"tips":         tips,
		"appointments": appointments,
	})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	appointments, err := h.appointments.ListForMother(c.Request.Context(), actor.Username)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, appointments)
}

// BookAppointment books under the session username regardless of what the
// payload says.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	actor := middleware.ActorFrom(c)
	appt, err := h.appointments.BookForMother(c.Request.Context(), actor.Username, &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Created(c, appt)
}

// AskMobi relays the question to the assistant. The reply is always 200:
// provider trouble comes back as the fixed fallback text.
func (h *Handler) AskMobi(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	lang := middleware.LanguageFrom(c)
	reply := h.assistant.Ask(c.Request.Context(), req.Message, lang)
	httputil.OK(c, model.AskResponse{Reply: reply})
}
