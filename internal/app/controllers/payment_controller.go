package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
)

// PaymentController handles checkout operations
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// Checkout pays for a subject and enrolls the student
// @Summary Check out a paid subject
// @Description Charges the discounted price and creates the enrollment and subscription together. Card data is only simulated.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Checkout details"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.APIResponse "Free subject or invalid card data"
// @Failure 409 {object} dto.APIResponse "Already enrolled"
// @Router /payments/checkout [post]
// @Security BearerAuth
func (c *PaymentController) Checkout(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.paymentService.Checkout(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// ListSubscriptions returns the caller's payment history
// @Summary List own subscriptions
// @Tags payments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SubscriptionResponse}
// @Router /payments/subscriptions [get]
// @Security BearerAuth
func (c *PaymentController) ListSubscriptions(ctx *gin.Context) {
	subscriptions, err := c.paymentService.ListSubscriptions(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subscriptions))
}
