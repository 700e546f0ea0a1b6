package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/category"
)

type Handler struct {
	service category.CategoryServicer
}

func NewHandler(service category.CategoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/categories")
	{
		categories.POST("/register-category", h.CreateCategory)
		categories.GET("/get-all-categories", h.ListCategories)
		categories.GET("/get-categorybyId/:id", h.GetCategory)
		categories.PATCH("/update-category/:id", h.UpdateCategory)
		categories.DELETE("/delete-category/:id", h.DeleteCategory)
	}
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req model.CategoryRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, cat)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	cat, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.CategoryRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
