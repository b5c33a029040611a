package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func TableRoutes(incomingRoutes *gin.RouterGroup, tableController *controllers.TableController, reservationController *controllers.ReservationController) {
	incomingRoutes.GET("/tables", tableController.GetTables())
	incomingRoutes.GET("/tables/:table_id", tableController.GetTable())
	incomingRoutes.POST("/tables", middleware.RequireRole("ADMIN"), tableController.CreateTable())
	incomingRoutes.PATCH("/tables/:table_id", middleware.RequireRole("ADMIN", "STAFF"), tableController.UpdateTable())

	incomingRoutes.GET("/availability", reservationController.GetAvailableTables())
	incomingRoutes.GET("/reservations", reservationController.GetReservations())
	incomingRoutes.POST("/reservations", reservationController.CreateReservation())
	incomingRoutes.PATCH("/reservations/:reservation_id/status", reservationController.UpdateReservationStatus())
}
