package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxRecentNotifications = 50

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Notifier fans order events out to connected websocket clients and keeps the
// most recent notifications in memory. Nothing here is durable: a restart
// drops the list and clients get no replay.
type Notifier struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	recent  []models.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (n *Notifier) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := n.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		n.mu.Lock()
		n.clients[conn] = true
		n.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				n.mu.Lock()
				delete(n.clients, conn)
				n.mu.Unlock()
				break
			}
		}
	}
}

// Publish prepends the notification to the capped list and broadcasts it.
func (n *Notifier) Publish(event string, notification models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.recent = append([]models.Notification{notification}, n.recent...)
	if len(n.recent) > maxRecentNotifications {
		n.recent = n.recent[:maxRecentNotifications]
	}

	messageBytes, err := json.Marshal(Message{Event: event, Payload: notification})
	if err != nil {
		log.Println("error marshaling notification:", err)
		return
	}
	for client := range n.clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			client.Close()
			delete(n.clients, client)
		}
	}
}

// Recent returns a copy, newest first.
func (n *Notifier) Recent() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

func (n *Notifier) GetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, n.Recent())
	}
}

// OrderWatcher tails the order collection's change stream and turns inserts
// and status updates into notifications.
type OrderWatcher struct {
	orderCollection *mongo.Collection
	notifier        *Notifier
}

func NewOrderWatcher(db *database.Database, notifier *Notifier) *OrderWatcher {
	return &OrderWatcher{
		orderCollection: db.OpenCollection("order"),
		notifier:        notifier,
	}
}

// Run blocks until ctx is cancelled, re-opening the stream after transient
// failures.
func (w *OrderWatcher) Run(ctx context.Context) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"operationType": "insert"},
			{"operationType": "update", "updateDescription.updatedFields.status": bson.M{"$exists": true}},
		}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	for {
		stream, err := w.orderCollection.Watch(ctx, pipeline, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Println("order change stream failed to open:", err)
			select {
			case <-time.After(5 * time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}
		w.consume(ctx, stream)
		if ctx.Err() != nil {
			return
		}
	}
}

func (w *OrderWatcher) consume(ctx context.Context, stream *mongo.ChangeStream) {
	defer stream.Close(ctx)
	for stream.Next(ctx) {
		var event struct {
			OperationType string       `bson:"operationType"`
			FullDocument  models.Order `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			log.Println("error decoding change event:", err)
			continue
		}
		switch event.OperationType {
		case "insert":
			w.notifier.Publish("newOrder", models.NewOrderNotification(event.FullDocument))
		case "update":
			w.notifier.Publish("orderStatus", models.StatusChangeNotification(event.FullDocument))
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Println("order change stream closed:", err)
	}
}
