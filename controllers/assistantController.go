package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AssistantController is a keyword-matching dispatcher over the repositories.
// There is no language model behind it; anything it cannot match falls back
// to a fixed string table.
type AssistantController struct {
	products     *ProductController
	orders       *OrderController
	reservations *ReservationController
}

func NewAssistantController(products *ProductController, orders *OrderController, reservations *ReservationController) *AssistantController {
	return &AssistantController{
		products:     products,
		orders:       orders,
		reservations: reservations,
	}
}

var fallbackReplies = []string{
	"I can help you browse the menu, track your orders, or book a table. What would you like to do?",
	"Sorry, I didn't catch that. Try asking about the menu, your orders, or table reservations.",
	"I'm a simple assistant: menu questions, order tracking and reservations are what I know.",
}

// fallbackReply picks deterministically from the table so the same message
// always gets the same answer.
func fallbackReply(message string) string {
	return fallbackReplies[len(message)%len(fallbackReplies)]
}

func containsAny(message string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func (ctrl *AssistantController) Chat() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Message string `json:"message" validate:"required"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		message := strings.ToLower(body.Message)
		switch {
		case containsAny(message, "menu", "food", "eat", "dish", "product"):
			products, err := ctrl.products.Search(ctx, "", "")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"reply": "Here is our menu.", "data": products})
		case containsAny(message, "my order", "track", "where is", "status of"):
			userId := c.GetString("uid")
			if userId == "" {
				c.JSON(http.StatusOK, gin.H{"reply": "Please sign in so I can look up your orders."})
				return
			}
			orders, err := ctrl.orders.Find(ctx, bson.M{"user_id": userId})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching your orders"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"reply": "Here are your recent orders.", "data": orders})
		case containsAny(message, "table", "book", "reserv", "seat"):
			date := time.Now().Format("2006-01-02")
			tables, err := ctrl.reservations.AvailableTables(ctx, date, "18:00", "20:00")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking availability"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"reply": "These tables are free tonight between 18:00 and 20:00.", "data": tables})
		case containsAny(message, "hour", "open", "close"):
			c.JSON(http.StatusOK, gin.H{"reply": "We are open every day from 11:00 to 23:00."})
		case containsAny(message, "pay", "card", "cash"):
			c.JSON(http.StatusOK, gin.H{"reply": "We accept cards, cash and wallet payments at checkout."})
		default:
			c.JSON(http.StatusOK, gin.H{"reply": fallbackReply(body.Message)})
		}
	}
}
