package medicine

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/medicine"
)

type Handler struct {
	service medicine.MedicineServicer
}

func NewHandler(service medicine.MedicineServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medicines := r.Group("/medicines")
	{
		medicines.POST("/register-medicine", h.CreateMedicine)
		medicines.GET("/get-all-medicines", h.ListMedicines)
		medicines.GET("/get-medicinesById/:id", h.GetMedicine)
		medicines.PATCH("/update-medicine/:id", h.UpdateMedicine)
		medicines.DELETE("/delete-medicine/:id", h.DeleteMedicine)
	}
}

func (h *Handler) CreateMedicine(c *gin.Context) {
	var req model.MedicineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	m, err := h.service.CreateMedicine(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, m)
}

// ListMedicines accepts an optional ?categoryId= filter
func (h *Handler) ListMedicines(c *gin.Context) {
	categoryID, err := handler.QueryUUID(c, "categoryId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	medicines, err := h.service.ListMedicines(c.Request.Context(), model.MedicineFilter{CategoryID: categoryID})
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, medicines)
}

func (h *Handler) GetMedicine(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	m, err := h.service.GetMedicine(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, m)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.MedicineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	m, err := h.service.UpdateMedicine(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, m)
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteMedicine(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
