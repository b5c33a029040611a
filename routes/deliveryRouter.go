package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(incomingRoutes *gin.RouterGroup, deliveryController *controllers.DeliveryController) {
	incomingRoutes.GET("/orders/:order_id/location", deliveryController.GetOrderDriverLocation())
	incomingRoutes.POST("/orders/:order_id/simulate", middleware.RequireRole("ADMIN", "STAFF"), deliveryController.SimulateDriverMovement())
}
