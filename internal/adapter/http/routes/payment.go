package routes

import (
	"payment_adapter/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments      = "/payments"
	PathNotifications = "/notifications"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, notificationHandler *handlers.NotificationHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:payment_id/dispatch", paymentHandler.DispatchPayment)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
	}

	// The gateway posts asynchronous transaction status notifications here.
	rg.POST(PathNotifications, notificationHandler.HandleNotification)
}
