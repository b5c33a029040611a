package routes

import (
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/middleware"

	"github.com/gin-gonic/gin"
)

func ProductRoutes(incomingRoutes *gin.Engine, productController *controllers.ProductController) {
	incomingRoutes.GET("/products", productController.GetProducts())
	incomingRoutes.GET("/products/:product_id", productController.GetProduct())
	incomingRoutes.GET("/categories", productController.GetCategories())
}

func ProductAdminRoutes(incomingRoutes *gin.RouterGroup, productController *controllers.ProductController) {
	incomingRoutes.POST("/products", middleware.RequireRole("ADMIN", "STAFF"), productController.CreateProduct())
	incomingRoutes.PATCH("/products/:product_id", middleware.RequireRole("ADMIN", "STAFF"), productController.UpdateProduct())
	incomingRoutes.POST("/categories", middleware.RequireRole("ADMIN", "STAFF"), productController.CreateCategory())
}
