package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID         primitive.ObjectID `bson:"_id" json:"-"`
	Order_id   string             `json:"order_id"`
	Title      string             `json:"title"`
	Message    string             `json:"message"`
	Severity   string             `json:"severity"`
	Created_at time.Time          `json:"created_at"`
}

// statusSeverity maps an order status to the severity tag the clients use to
// pick toast color and sound.
var statusSeverity = map[OrderStatus]string{
	OrderPending:   "info",
	OrderPreparing: "info",
	OrderReady:     "success",
	OrderDelivered: "success",
	OrderCancelled: "warning",
}

func SeverityForStatus(status OrderStatus) string {
	if severity, ok := statusSeverity[status]; ok {
		return severity
	}
	return "info"
}

func NewOrderNotification(order Order) Notification {
	return Notification{
		ID:         primitive.NewObjectID(),
		Order_id:   order.Order_id,
		Title:      "New order",
		Message:    fmt.Sprintf("Order %s was placed", order.Order_id),
		Severity:   SeverityForStatus(order.Status),
		Created_at: time.Now(),
	}
}

func StatusChangeNotification(order Order) Notification {
	return Notification{
		ID:         primitive.NewObjectID(),
		Order_id:   order.Order_id,
		Title:      "Order status updated",
		Message:    fmt.Sprintf("Order %s is now %s", order.Order_id, order.Status),
		Severity:   SeverityForStatus(order.Status),
		Created_at: time.Now(),
	}
}
