package disease

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/disease"
)

type Handler struct {
	service disease.DiseaseServicer
}

func NewHandler(service disease.DiseaseServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	diseases := r.Group("/diseases")
	{
		diseases.POST("/register-disease", h.CreateDisease)
		diseases.GET("/get-all-diseases", h.ListDiseases)
		diseases.GET("/get-diseaseById/:id", h.GetDisease)
		diseases.PATCH("/update-disease/:id", h.UpdateDisease)
		diseases.DELETE("/delete-disease/:id", h.DeleteDisease)
	}
}

func (h *Handler) CreateDisease(c *gin.Context) {
	var req model.DiseaseRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	d, err := h.service.CreateDisease(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, d)
}

func (h *Handler) ListDiseases(c *gin.Context) {
	diseases, err := h.service.ListDiseases(c.Request.Context())
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, diseases)
}

func (h *Handler) GetDisease(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	d, err := h.service.GetDisease(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) UpdateDisease(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.DiseaseRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	d, err := h.service.UpdateDisease(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) DeleteDisease(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteDisease(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
