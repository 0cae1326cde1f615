package handlers

import (
	"net/http"

	"obrafacil/middleware"
	"obrafacil/services/payments"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes subscription checkout endpoints.
type PaymentHandler struct {
	PaymentService payments.PaymentService
}

func NewPaymentHandler(svc payments.PaymentService) *PaymentHandler {
	return &PaymentHandler{PaymentService: svc}
}

type startCheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// StartCheckoutHandler handles POST /api/payments/checkout (authenticated
// provider). Returns 202 with the pending session; the caller polls until the
// worker fills in the redirect URL.
func (h *PaymentHandler) StartCheckoutHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req startCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cs, err := h.PaymentService.StartCheckout(c.Request.Context(), callerID, req.PriceID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, cs)
}

// GetCheckoutHandler handles GET /api/payments/checkout/:id (poll endpoint).
func (h *PaymentHandler) GetCheckoutHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	cs, err := h.PaymentService.GetCheckout(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cs)
}

// ListPlansHandler handles GET /api/payments/plans (public catalog mirror).
func (h *PaymentHandler) ListPlansHandler(c *gin.Context) {
	products, prices, err := h.PaymentService.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "prices": prices})
}
