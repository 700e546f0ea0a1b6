package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/payment"
)

type Handler struct {
	service payment.PaymentServicer
}

func NewHandler(service payment.PaymentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("/register-payment", h.CreatePayment)
		payments.GET("/get-all-payments", h.ListPayments)
		payments.GET("/get-paymentsById/:id", h.GetPayment)
		payments.PATCH("/update-payment/:id", h.UpdatePayment)
		payments.DELETE("/delete-payment/:id", h.DeletePayment)
	}
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var req model.PaymentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusCreated, p)
}

// ListPayments accepts optional ?patientId= and ?status= filters
func (h *Handler) ListPayments(c *gin.Context) {
	patientID, err := handler.QueryUUID(c, "patientId")
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	filter := model.PaymentFilter{
		PatientID: patientID,
		Status:    model.PaymentStatus(c.Query("status")),
	}
	payments, err := h.service.ListPayments(c.Request.Context(), filter)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, payments)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	var req model.PaymentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondWithError(c, err)
		return
	}

	p, err := h.service.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), id); err != nil {
		handler.RespondWithError(c, err)
		return
	}
	handler.RespondWithSuccess(c, http.StatusOK, gin.H{"id": id})
}
