package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/patient"
)

type Handler struct {
	service patient.PatientServicer
}

func NewHandler(service patient.PatientServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("/register-patient", h.CreatePatient)
		patients.GET("/get-all-patients", h.ListPatients)
		patients.GET("/get-patientById/:id", h.GetPatient)
		patients.PATCH("/update-patient/:id", h.UpdatePatient)
		patients.DELETE("/delete-patient/:id", h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.PatientRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.CreatePatient(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, p)
}

// ListPatients accepts an optional ?sex= filter
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context(), model.PatientFilter{Sex: c.Query("sex")})
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.PatientRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.UpdatePatient(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
