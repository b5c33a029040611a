package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, userController *controllers.UserController) {
	incomingRoutes.POST("/users/signup", userController.SignUp())
	incomingRoutes.POST("/users/login", userController.Login())
}

func UserAdminRoutes(incomingRoutes *gin.RouterGroup, userController *controllers.UserController) {
	incomingRoutes.GET("/users", middleware.RequireRole("ADMIN"), userController.GetUsers())
	incomingRoutes.GET("/users/:user_id", userController.GetUser())
	incomingRoutes.PATCH("/users/:user_id", userController.UpdateUser())
}
