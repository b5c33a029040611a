package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Table struct {
	ID           primitive.ObjectID `bson:"_id"`
	Table_number *int               `json:"table_number" validate:"required,gt=0"`
	Capacity     *int               `json:"capacity" validate:"required,gt=0"`
	Status       TableStatus        `json:"status"`
	Location     *string            `json:"location"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
	Table_id     string             `json:"table_id"`
}
