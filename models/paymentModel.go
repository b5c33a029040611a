package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentTransaction struct {
	ID                      primitive.ObjectID `bson:"_id"`
	Transaction_id          string             `json:"transaction_id"`
	Order_id                string             `json:"order_id" validate:"required"`
	Payment_method_id       *string            `json:"payment_method_id"`
	Amount                  float64            `json:"amount"`
	Status                  PaymentStatus      `json:"status"`
	Provider_transaction_id *string            `json:"provider_transaction_id"`
	Provider_status         *string            `json:"provider_status"`
	Provider_response       *string            `json:"provider_response"`
	Created_at              time.Time          `json:"created_at"`
	Updated_at              time.Time          `json:"updated_at"`
}

type PaymentMethod struct {
	ID                primitive.ObjectID `bson:"_id"`
	Payment_method_id string             `json:"payment_method_id"`
	User_id           string             `json:"user_id"`
	Type              *string            `json:"type" validate:"required,eq=card|eq=cash|eq=wallet"`
	Card_brand        *string            `json:"card_brand"`
	Last_four         *string            `json:"last_four"`
	Expiry_month      *int               `json:"expiry_month"`
	Expiry_year       *int               `json:"expiry_year"`
	Is_default        bool               `json:"is_default"`
	Created_at        time.Time          `json:"created_at"`
	Updated_at        time.Time          `json:"updated_at"`
}
