package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        *string            `json:"name" validate:"required,min=2,max=100"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price" validate:"required,gt=0"`
	Category_id *string            `json:"category_id" validate:"required"`
	Image_url   *string            `json:"image_url"`
	Available   bool               `json:"available"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
	Product_id  string             `json:"product_id"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        *string            `json:"name" validate:"required,min=2,max=100"`
	Description *string            `json:"description"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
	Category_id string             `json:"category_id"`
}
