package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/database"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/middleware"
	"go-restaurant-ordering/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	mongoUrl := os.Getenv("MONGODB_URL")
	if mongoUrl == "" {
		log.Fatal("MONGODB_URL is not set")
	}
	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		log.Fatal("SECRET_KEY is not set")
	}
	gatewayUrl := os.Getenv("PAYMENT_GATEWAY_URL")
	if gatewayUrl == "" {
		log.Fatal("PAYMENT_GATEWAY_URL is not set")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "restaurant"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	db, err := database.Connect(mongoUrl, databaseName)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Disconnect(ctx)
	}()

	auth := helpers.NewAuth(secretKey, db.OpenCollection("user"))
	gateway := controllers.NewPaymentGateway(gatewayUrl)
	notifier := controllers.NewNotifier()

	userController := controllers.NewUserController(db, auth)
	productController := controllers.NewProductController(db)
	orderController := controllers.NewOrderController(db)
	tableController := controllers.NewTableController(db)
	reservationController := controllers.NewReservationController(db, tableController)
	paymentController := controllers.NewPaymentController(db, gateway)
	deliveryController := controllers.NewDeliveryController(db)
	analyticsController := controllers.NewAnalyticsController(db)
	mcpController := controllers.NewMCPController(productController, orderController, reservationController)
	assistantController := controllers.NewAssistantController(productController, orderController, reservationController)

	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	watcher := controllers.NewOrderWatcher(db, notifier)
	go watcher.Run(watcherCtx)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", notifier.HandleWebSocket())

	// public: browsing and the tool endpoints
	routes.UserRoutes(router, userController)
	routes.ProductRoutes(router, productController)
	routes.ToolRoutes(router, mcpController, assistantController)

	authed := router.Group("/")
	authed.Use(middleware.Authentication(auth))
	routes.UserAdminRoutes(authed, userController)
	routes.ProductAdminRoutes(authed, productController)
	routes.OrderRoutes(authed, orderController)
	routes.TableRoutes(authed, tableController, reservationController)
	routes.PaymentRoutes(authed, paymentController)
	routes.DeliveryRoutes(authed, deliveryController)
	routes.AnalyticsRoutes(authed, analyticsController)
	authed.GET("/notifications", notifier.GetNotifications())

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
