package healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/healthcheck"
)

type Handler struct {
	service healthcheck.HealthCheckServicer
}

func NewHandler(service healthcheck.HealthCheckServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	checks := r.Group("/healthCheck")
	{
		checks.POST("/register-healthCheck", h.CreateHealthCheck)
		checks.GET("/get-all-healthChecks", h.ListHealthChecks)
		checks.GET("/get-healthCheckById/:id", h.GetHealthCheck)
		checks.PATCH("/update-healthCheck/:id", h.UpdateHealthCheck)
		checks.DELETE("/delete-healthCheck/:id", h.DeleteHealthCheck)
	}
}

func (h *Handler) CreateHealthCheck(c *gin.Context) {
	var req model.HealthCheckRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	hc, err := h.service.CreateHealthCheck(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, hc)
}

// ListHealthChecks accepts optional ?patientId= and ?labDoctorId= filters
func (h *Handler) ListHealthChecks(c *gin.Context) {
	patientID, err := handler.QueryUUID(c, "patientId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	labDoctorID, err := handler.QueryUUID(c, "labDoctorId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	filter := model.HealthCheckFilter{
		PatientID:   patientID,
		LabDoctorID: labDoctorID,
	}
	checks, err := h.service.ListHealthChecks(c.Request.Context(), filter)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, checks)
}

func (h *Handler) GetHealthCheck(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	hc, err := h.service.GetHealthCheck(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, hc)
}

func (h *Handler) UpdateHealthCheck(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.HealthCheckRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	hc, err := h.service.UpdateHealthCheck(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, hc)
}

func (h *Handler) DeleteHealthCheck(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteHealthCheck(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
