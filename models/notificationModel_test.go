package models

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/go-playground/assert.v1"
)

func TestSeverityForStatus(t *testing.T) {
	assert.Equal(t, SeverityForStatus(OrderPending), "info")
	assert.Equal(t, SeverityForStatus(OrderPreparing), "info")
	assert.Equal(t, SeverityForStatus(OrderReady), "success")
	assert.Equal(t, SeverityForStatus(OrderDelivered), "success")
	assert.Equal(t, SeverityForStatus(OrderCancelled), "warning")
	assert.Equal(t, SeverityForStatus(OrderStatus("bogus")), "info")
}

func TestStatusChangeNotification(t *testing.T) {
	order := Order{ID: primitive.NewObjectID(), Status: OrderReady}
	order.Order_id = order.ID.Hex()

	notification := StatusChangeNotification(order)
	assert.Equal(t, notification.Order_id, order.Order_id)
	assert.Equal(t, notification.Severity, "success")
	if !strings.Contains(notification.Message, "ready") {
		t.Errorf("message %q should mention the new status", notification.Message)
	}
}

func TestNewOrderNotification(t *testing.T) {
	order := Order{ID: primitive.NewObjectID(), Status: OrderPending}
	order.Order_id = order.ID.Hex()

	notification := NewOrderNotification(order)
	assert.Equal(t, notification.Title, "New order")
	assert.Equal(t, notification.Severity, "info")
	if !strings.Contains(notification.Message, order.Order_id) {
		t.Errorf("message %q should mention the order id", notification.Message)
	}
}
