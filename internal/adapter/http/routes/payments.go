package routes

import (
	"escrowpay/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks = "/webhooks"
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, paymentHandler *handlers.PaymentHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/payments", webhookHandler.ReceiveProviderNotification)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.InitiatePayment)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
		payments.GET("/:payment_id/escrow", paymentHandler.GetEscrow)
		payments.POST("/:payment_id/escrow/release", paymentHandler.ReleaseEscrow)
	}
}
