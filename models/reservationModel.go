package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation times are zero-padded "HH:MM" strings so lexicographic
// comparison matches chronological order within a single date.
type Reservation struct {
	ID             primitive.ObjectID `bson:"_id"`
	Reservation_id string             `json:"reservation_id"`
	Table_id       *string            `json:"table_id" validate:"required"`
	User_id        *string            `json:"user_id" validate:"required"`
	Date           *string            `json:"date" validate:"required"`
	Start_time     *string            `json:"start_time" validate:"required"`
	End_time       *string            `json:"end_time" validate:"required"`
	Party_size     *int               `json:"party_size" validate:"required,gt=0"`
	Status         ReservationStatus  `json:"status"`
	Created_at     time.Time          `json:"created_at"`
	Updated_at     time.Time          `json:"updated_at"`
}
