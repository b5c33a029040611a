package controllers

import (
	"fmt"
	"testing"

	"go-restaurant-ordering/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/go-playground/assert.v1"
)

func makeNotification(i int) models.Notification {
	return models.Notification{
		ID:       primitive.NewObjectID(),
		Order_id: fmt.Sprintf("order-%d", i),
		Title:    "Order status updated",
		Severity: "info",
	}
}

func TestNotifierCapsRecentList(t *testing.T) {
	notifier := NewNotifier()
	for i := 0; i < maxRecentNotifications+10; i++ {
		notifier.Publish("orderStatus", makeNotification(i))
	}

	recent := notifier.Recent()
	assert.Equal(t, len(recent), maxRecentNotifications)
	// newest first; the oldest ten fell off
	assert.Equal(t, recent[0].Order_id, fmt.Sprintf("order-%d", maxRecentNotifications+9))
	assert.Equal(t, recent[len(recent)-1].Order_id, "order-10")
}

func TestNotifierRecentReturnsCopy(t *testing.T) {
	notifier := NewNotifier()
	notifier.Publish("newOrder", makeNotification(1))

	recent := notifier.Recent()
	recent[0].Order_id = "mutated"
	assert.Equal(t, notifier.Recent()[0].Order_id, "order-1")
}
