package staff

import (
	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/handler"
	"github.com/mobimama/mobimama-api/internal/middleware"
	"github.com/mobimama/mobimama-api/internal/model"
	appointmentService "github.com/mobimama/mobimama-api/internal/service/appointment"
	tipService "github.com/mobimama/mobimama-api/internal/service/tip"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/httputil"
)

// Handler serves the clinic/nurse staff surface: tip management and the
// appointment worklist.
type Handler struct {
	tips         tipService.TipServicer
	appointments appointmentService.AppointmentServicer
}

func NewHandler(tips tipService.TipServicer, appointments appointmentService.AppointmentServicer) *Handler {
	return &Handler{tips: tips, appointments: appointments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.POST("/tips", h.CreateTip)
	r.PUT("/tips/:id", h.UpdateTip)
	r.DELETE("/tips/:id", h.DeleteTip)
	r.GET("/appointments", h.ListAppointments)
	r.PUT("/appointments/:id", h.UpdateAppointment)
}

// Dashboard returns the staff landing data: all tips and the full
// appointment list.
func (h *Handler) Dashboard(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	tips, err := h.tips.ListTips(c.Request.Context())
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	appointments, err := h.appointments.List(c.Request.Context(), nil)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	httputil.OK(c, gin.H{
		"username":     actor.Username,
		"role":         actor.Role,
		"tips":         tips,
		"appointments": appointments,
	})
}

func (h *Handler) CreateTip(c *gin.Context) {
	var req model.CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	tip, err := h.tips.CreateTip(c.Request.Context(), &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Created(c, tip)
}

func (h *Handler) UpdateTip(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	var req model.UpdateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	tip, err := h.tips.UpdateTip(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, tip)
}

func (h *Handler) DeleteTip(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	if err := h.tips.DeleteTip(c.Request.Context(), id); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

// ListAppointments returns the worklist, optionally narrowed by exact clinic
// name and date.
func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	appointments, err := h.appointments.List(c.Request.Context(), &filters)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	appt, err := h.appointments.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, appt)
}
