package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/prescription"
)

// LineItemHandler serves the medicines attached to prescriptions
type LineItemHandler struct {
	service prescription.LineItemServicer
}

func NewLineItemHandler(service prescription.LineItemServicer) *LineItemHandler {
	return &LineItemHandler{service: service}
}

func (h *LineItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/prescriptionMedicines")
	{
		items.POST("/register-prescriptionMedicine", h.CreateLineItem)
		items.GET("/get-all-prescriptionMedicines", h.ListLineItems)
		items.GET("/get-prescriptionMedicineById/:id", h.GetLineItem)
		items.PATCH("/update-prescriptionMedicine/:id", h.UpdateLineItem)
		items.DELETE("/delete-prescriptionMedicine/:id", h.DeleteLineItem)
	}
}

func (h *LineItemHandler) CreateLineItem(c *gin.Context) {
	var req model.PrescriptionMedicineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	item, err := h.service.CreateLineItem(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, item)
}

func (h *LineItemHandler) ListLineItems(c *gin.Context) {
	prescriptionID, err := handler.QueryUUID(c, "prescriptionId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	medicineID, err := handler.QueryUUID(c, "medicineId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	filter := model.PrescriptionMedicineFilter{
		PrescriptionID: prescriptionID,
		MedicineID:     medicineID,
	}
	items, err := h.service.ListLineItems(c.Request.Context(), filter)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, items)
}

func (h *LineItemHandler) GetLineItem(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	item, err := h.service.GetLineItem(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, item)
}

func (h *LineItemHandler) UpdateLineItem(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.PrescriptionMedicineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	item, err := h.service.UpdateLineItem(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, item)
}

func (h *LineItemHandler) DeleteLineItem(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteLineItem(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
