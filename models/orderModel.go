package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID                     primitive.ObjectID `bson:"_id"`
	Order_id               string             `json:"order_id"`
	User_id                *string            `json:"user_id"` // nil for anonymous walk-in orders
	Status                 OrderStatus        `json:"status"`
	Total_amount           float64            `json:"total_amount"` // derived from item rows, never accepted from the client
	Total_quantity         int                `json:"total_quantity"`
	Notes                  *string            `json:"notes"`
	Table_number           *int               `json:"table_number"`
	Driver_id              *string            `json:"driver_id"`
	Payment_transaction_id *string            `json:"payment_transaction_id"`
	Payment_status         PaymentStatus      `json:"payment_status"`
	Created_at             time.Time          `json:"created_at"`
	Updated_at             time.Time          `json:"updated_at"`
}

type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_item_id string             `json:"order_item_id"`
	Order_id      string             `json:"order_id"`
	Product_id    *string            `json:"product_id" validate:"required"`
	Quantity      *int               `json:"quantity" validate:"required,gt=0"`
	Unit_price    *float64           `json:"unit_price"` // price snapshot captured at order time
	Notes         *string            `json:"notes"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
}
