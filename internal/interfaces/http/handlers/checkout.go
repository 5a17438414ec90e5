// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/checkout"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the two-step checkout wizard endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// checkoutError maps service errors to HTTP responses
func checkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, checkout.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
	case errors.Is(err, checkout.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not valid for current checkout step"})
	case errors.Is(err, checkout.ErrInvalidMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
	case errors.Is(err, checkout.ErrInvalidUPIApp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UPI app"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout operation failed"})
	}
}

// Start handles POST /checkout
func (h *CheckoutHandler) Start(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	sess, err := h.checkoutService.Start(c.Request.Context(), sessionID)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started",
		"data":    sess,
	})
}

// Get handles GET /checkout
func (h *CheckoutHandler) Get(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	sess, err := h.checkoutService.Get(c.Request.Context(), sessionID)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout state retrieved successfully",
		"data":    sess,
	})
}

type addressRequest struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// SubmitAddress handles PUT /checkout/address
func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.checkoutService.SubmitAddress(c.Request.Context(), sessionID, checkout.Address{
		FullName: req.FullName,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Country:  req.Country,
		Phone:    req.Phone,
	})
	if err != nil {
		checkoutError(c, err)
		return
	}

	message := "Address saved"
	if len(sess.Errors) > 0 {
		message = "Address has missing fields"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    sess,
	})
}

type locateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locate handles POST /checkout/locate
func (h *CheckoutHandler) Locate(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.checkoutService.Locate(c.Request.Context(), sessionID, req.Latitude, req.Longitude)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location processed",
		"data":    sess,
	})
}

type paymentRequest struct {
	Method string `json:"method" binding:"required"`
	UPIApp string `json:"upi_app"`
}

// SelectPayment handles PUT /checkout/payment
func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.checkoutService.SelectPayment(c.Request.Context(), sessionID, req.Method, req.UPIApp)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method selected",
		"data":    sess,
	})
}

// Back handles POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	sess, err := h.checkoutService.Back(c.Request.Context(), sessionID)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Returned to address step",
		"data":    sess,
	})
}

// Confirm handles POST /checkout/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	completion, err := h.checkoutService.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    completion,
	})
}
