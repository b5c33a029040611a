package routes

import (
	"go-restaurant-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func ToolRoutes(incomingRoutes *gin.Engine, mcpController *controllers.MCPController, assistantController *controllers.AssistantController) {
	incomingRoutes.POST("/mcp", mcpController.Dispatch())
	incomingRoutes.POST("/assistant", assistantController.Chat())
}
