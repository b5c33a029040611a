package routes

import (
	"go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(incomingRoutes *gin.RouterGroup, paymentController *controllers.PaymentController) {
	incomingRoutes.POST("/payments/transactions", paymentController.CreatePaymentTransaction())
	incomingRoutes.POST("/api/payments/process", paymentController.ProcessPayment())
	incomingRoutes.PATCH("/payments/transactions/:transaction_id/status", paymentController.UpdateTransactionStatus())

	incomingRoutes.GET("/paymentmethods", paymentController.GetPaymentMethods())
	incomingRoutes.POST("/paymentmethods", paymentController.CreatePaymentMethod())
	incomingRoutes.PATCH("/paymentmethods/:payment_method_id/default", paymentController.SetDefaultPaymentMethod())
	incomingRoutes.DELETE("/paymentmethods/:payment_method_id", paymentController.DeletePaymentMethod())
}
