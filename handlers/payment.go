package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/metrics"
	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/services"
)

type PaymentHandler struct {
	gateway services.PaymentGateway
}

// NewPaymentHandler accepts a nil gateway; payment intents then answer 503.
func NewPaymentHandler(gateway services.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{gateway: gateway}
}

func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	if h.gateway == nil {
		respondError(c, http.StatusServiceUnavailable, "Payments are not configured")
		return
	}

	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	amount, err := services.ToMinorUnits(req.Price)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	clientSecret, err := h.gateway.CreatePaymentIntent(c.Request.Context(), amount, services.CurrencyUSD)
	if err != nil {
		metrics.IncPaymentIntent("error")
		respondFailure(c, "PaymentHandler", http.StatusBadGateway, "Failed to create payment intent", err)
		return
	}

	metrics.IncPaymentIntent("ok")
	c.JSON(http.StatusOK, models.PaymentIntentResponse{ClientSecret: clientSecret})
}
