package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func AnalyticsRoutes(incomingRoutes *gin.RouterGroup, analyticsController *controllers.AnalyticsController) {
	incomingRoutes.GET("/analytics/sales/:startDate/:endDate", middleware.RequireRole("ADMIN"), analyticsController.GetSales())
	incomingRoutes.GET("/analytics/orders/status", middleware.RequireRole("ADMIN", "STAFF"), analyticsController.GetOrderStatusCounts())
	incomingRoutes.GET("/analytics/products/top", middleware.RequireRole("ADMIN", "STAFF"), analyticsController.GetTopProducts())
}
