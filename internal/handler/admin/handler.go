package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/mobimama/mobimama-api/internal/handler"
	"github.com/mobimama/mobimama-api/internal/model"
	appointmentService "github.com/mobimama/mobimama-api/internal/service/appointment"
	clinicService "github.com/mobimama/mobimama-api/internal/service/clinic"
	userService "github.com/mobimama/mobimama-api/internal/service/user"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/httputil"
)

// Handler serves the admin panel surface behind the panel prefix.
type Handler struct {
	users        userService.UserServicer
	clinics      clinicService.ClinicServicer
	appointments appointmentService.AppointmentServicer
}

func NewHandler(users userService.UserServicer, clinics clinicService.ClinicServicer, appointments appointmentService.AppointmentServicer) *Handler {
	return &Handler{users: users, clinics: clinics, appointments: appointments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Dashboard)

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.POST("", h.CreateClinic)
		clinics.GET("/:id", h.GetClinic)
		clinics.PUT("/:id", h.UpdateClinic)
		clinics.DELETE("/:id", h.DeleteClinic)
	}

	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// Dashboard returns the panel landing counts.
func (h *Handler) Dashboard(c *gin.Context) {
	counts, err := h.users.DashboardCounts(c.Request.Context())
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, counts)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, users)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Created(c, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.clinics.ListClinics(c.Request.Context())
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, clinics)
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	clinic, err := h.clinics.CreateClinic(c.Request.Context(), &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.Created(c, clinic)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	clinic, err := h.clinics.GetClinic(c.Request.Context(), id)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, clinic)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	var req model.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, apperror.Validation(err.Error()))
		return
	}

	clinic, err := h.clinics.UpdateClinic(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, clinic)
}

// DeleteClinic removes the clinic and its appointments.
func (h *Handler) DeleteClinic(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	if err := h.clinics.DeleteClinic(c.Request.Context(), id); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

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

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.Fail(c, err)
		return
	}

	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		httputil.Fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}
