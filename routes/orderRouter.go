package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.RouterGroup, orderController *controllers.OrderController) {
	incomingRoutes.POST("/orders", orderController.CreateOrder())
	incomingRoutes.GET("/orders/:order_id", orderController.GetOrder())
	incomingRoutes.GET("/orders", middleware.RequireRole("ADMIN", "STAFF"), orderController.GetOrders())
	incomingRoutes.GET("/myorders", orderController.GetUserOrders())
	incomingRoutes.PATCH("/orders/:order_id/status", middleware.RequireRole("ADMIN", "STAFF"), orderController.UpdateOrderStatus())
	incomingRoutes.POST("/orders/:order_id/cancel", orderController.CancelOrder())
}
