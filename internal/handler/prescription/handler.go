package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/prescription"
)

type Handler struct {
	service prescription.PrescriptionServicer
}

func NewHandler(service prescription.PrescriptionServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("/register-prescription", h.CreatePrescription)
		prescriptions.GET("/get-all-prescriptions", h.ListPrescriptions)
		prescriptions.GET("/get-prescriptionsById/:id", h.GetPrescription)
		prescriptions.PATCH("/update-prescription/:id", h.UpdatePrescription)
		prescriptions.DELETE("/delete-prescription/:id", h.DeletePrescription)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.PrescriptionRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.CreatePrescription(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, p)
}

// ListPrescriptions accepts optional ?patientId=, ?doctorId= and ?status= filters
func (h *Handler) ListPrescriptions(c *gin.Context) {
	patientID, err := handler.QueryUUID(c, "patientId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	doctorID, err := handler.QueryUUID(c, "doctorId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	filter := model.PrescriptionFilter{
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    model.PrescriptionStatus(c.Query("status")),
	}
	prescriptions, err := h.service.ListPrescriptions(c.Request.Context(), filter)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, prescriptions)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.PrescriptionRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.UpdatePrescription(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeletePrescription(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
