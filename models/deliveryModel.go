package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverLocation struct {
	ID          primitive.ObjectID `bson:"_id"`
	Location_id string             `json:"location_id"`
	Order_id    string             `json:"order_id"`
	Driver_id   string             `json:"driver_id"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Recorded_at time.Time          `json:"recorded_at"`
}
