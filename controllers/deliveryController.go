package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const simulationSteps = 20

type DeliveryController struct {
	locationCollection *mongo.Collection
	orderCollection    *mongo.Collection
}

func NewDeliveryController(db *database.Database) *DeliveryController {
	return &DeliveryController{
		locationCollection: db.OpenCollection("driverLocation"),
		orderCollection:    db.OpenCollection("order"),
	}
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// routePoints interpolates steps points linearly from start to end, endpoint
// included.
func routePoints(start Coordinate, end Coordinate, steps int) []Coordinate {
	if steps < 1 {
		steps = 1
	}
	points := make([]Coordinate, 0, steps)
	for i := 1; i <= steps; i++ {
		fraction := float64(i) / float64(steps)
		points = append(points, Coordinate{
			Latitude:  start.Latitude + (end.Latitude-start.Latitude)*fraction,
			Longitude: start.Longitude + (end.Longitude-start.Longitude)*fraction,
		})
	}
	return points
}

// LatestLocation reads the order for its driver id, then the newest location
// row for that driver and order.
func (ctrl *DeliveryController) LatestLocation(ctx context.Context, orderId string) (*models.DriverLocation, error) {
	var order models.Order
	err := ctrl.orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.Driver_id == nil {
		return nil, ErrNotFound
	}

	var location models.DriverLocation
	err = ctrl.locationCollection.FindOne(
		ctx,
		bson.M{"order_id": orderId, "driver_id": *order.Driver_id},
		options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}}),
	).Decode(&location)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (ctrl *DeliveryController) GetOrderDriverLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		location, err := ctrl.LatestLocation(ctx, c.Param("order_id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no driver location for this order"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the driver location"})
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

// SimulateDriverMovement is demo scaffolding: it writes an interpolated track
// of location rows spread over the requested duration. The loop runs in its
// own goroutine so the request returns immediately.
func (ctrl *DeliveryController) SimulateDriverMovement() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Driver_id        string     `json:"driver_id" validate:"required"`
			Start            Coordinate `json:"start"`
			End              Coordinate `json:"end"`
			Duration_seconds int        `json:"duration_seconds" validate:"required,gt=0"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := ctrl.orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "driver_id", Value: body.Driver_id},
				{Key: "updated_at", Value: time.Now()},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while assigning the driver"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		points := routePoints(body.Start, body.End, simulationSteps)
		interval := time.Duration(body.Duration_seconds) * time.Second / time.Duration(len(points))

		go func() {
			for _, point := range points {
				insertCtx, insertCancel := context.WithTimeout(context.Background(), 10*time.Second)
				location := models.DriverLocation{
					ID:          primitive.NewObjectID(),
					Order_id:    orderId,
					Driver_id:   body.Driver_id,
					Latitude:    point.Latitude,
					Longitude:   point.Longitude,
					Recorded_at: time.Now(),
				}
				location.Location_id = location.ID.Hex()
				if _, err := ctrl.locationCollection.InsertOne(insertCtx, location); err != nil {
					log.Println("driver location insert failed:", err)
				}
				insertCancel()
				time.Sleep(interval)
			}
		}()

		c.JSON(http.StatusAccepted, gin.H{
			"order_id":  orderId,
			"driver_id": body.Driver_id,
			"steps":     len(points),
		})
	}
}
