package controllers

import (
	"context"
	"errors"
	"fmt"
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

type OrderController struct {
	orderCollection     *mongo.Collection
	orderItemCollection *mongo.Collection
	productCollection   *mongo.Collection
}

func NewOrderController(db *database.Database) *OrderController {
	return &OrderController{
		orderCollection:     db.OpenCollection("order"),
		orderItemCollection: db.OpenCollection("orderItem"),
		productCollection:   db.OpenCollection("product"),
	}
}

type OrderItemRequest struct {
	Product_id string  `json:"product_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Notes      *string `json:"notes"`
}

type OrderRequest struct {
	User_id      *string            `json:"user_id"`
	Table_number *int               `json:"table_number"`
	Notes        *string            `json:"notes"`
	Order_items  []OrderItemRequest `json:"order_items" validate:"required,min=1,dive"`
}

type OrderWithItems struct {
	Order       models.Order `json:"order"`
	Order_items []bson.M     `json:"order_items"`
}

// buildOrderItems turns the requested lines into item rows, capturing the
// current product price as the unit_price snapshot.
func buildOrderItems(orderId string, requests []OrderItemRequest, prices map[string]float64) []models.OrderItem {
	now := time.Now()
	items := make([]models.OrderItem, 0, len(requests))
	for _, request := range requests {
		request := request
		price := toFixed(prices[request.Product_id], 2)
		item := models.OrderItem{
			ID:         primitive.NewObjectID(),
			Order_id:   orderId,
			Product_id: &request.Product_id,
			Quantity:   &request.Quantity,
			Unit_price: &price,
			Notes:      request.Notes,
			Created_at: now,
			Updated_at: now,
		}
		item.Order_item_id = item.ID.Hex()
		items = append(items, item)
	}
	return items
}

func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(*item.Quantity) * *item.Unit_price
	}
	return toFixed(total, 2)
}

func orderQuantity(items []models.OrderItem) int {
	var quantity int
	for _, item := range items {
		quantity += *item.Quantity
	}
	return quantity
}

// Create inserts the order row and then its item rows. There is no
// multi-document transaction here: if the item insert fails the order row is
// deleted as a compensating action.
func (ctrl *OrderController) Create(ctx context.Context, request OrderRequest) (*models.Order, error) {
	prices := make(map[string]float64, len(request.Order_items))
	for _, line := range request.Order_items {
		var product models.Product
		err := ctrl.productCollection.FindOne(ctx, bson.M{"product_id": line.Product_id}).Decode(&product)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("product %s: %w", line.Product_id, ErrNotFound)
			}
			return nil, err
		}
		prices[line.Product_id] = *product.Price
	}

	now := time.Now()
	order := models.Order{
		ID:             primitive.NewObjectID(),
		User_id:        request.User_id,
		Status:         models.OrderPending,
		Notes:          request.Notes,
		Table_number:   request.Table_number,
		Payment_status: models.PaymentPending,
		Created_at:     now,
		Updated_at:     now,
	}
	order.Order_id = order.ID.Hex()

	items := buildOrderItems(order.Order_id, request.Order_items, prices)
	order.Total_amount = orderTotal(items)
	order.Total_quantity = orderQuantity(items)

	if _, err := ctrl.orderCollection.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	toInsert := make([]interface{}, 0, len(items))
	for _, item := range items {
		toInsert = append(toInsert, item)
	}
	if _, err := ctrl.orderItemCollection.InsertMany(ctx, toInsert); err != nil {
		// best-effort compensating delete; a crash before this leaves an
		// orphaned empty order
		ctrl.orderCollection.DeleteOne(ctx, bson.M{"order_id": order.Order_id})
		return nil, err
	}
	return &order, nil
}

func (ctrl *OrderController) WithItems(ctx context.Context, orderId string) (*OrderWithItems, error) {
	var order models.Order
	err := ctrl.orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "order_id", Value: orderId}}}}
	lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "product"},
		{Key: "localField", Value: "product_id"},
		{Key: "foreignField", Value: "product_id"},
		{Key: "as", Value: "product"},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$product"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "order_item_id", Value: 1},
		{Key: "order_id", Value: 1},
		{Key: "product_id", Value: 1},
		{Key: "quantity", Value: 1},
		{Key: "unit_price", Value: 1},
		{Key: "notes", Value: 1},
		{Key: "product_name", Value: "$product.name"},
		{Key: "product_image", Value: "$product.image_url"},
	}}}

	cursor, err := ctrl.orderItemCollection.Aggregate(ctx, mongo.Pipeline{matchStage, lookupStage, unwindStage, projectStage})
	if err != nil {
		return nil, err
	}
	var items []bson.M
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: order, Order_items: items}, nil
}

// UpdateStatus applies the transition table before touching the row. The
// update filter repeats the current status so a concurrent change loses
// cleanly instead of last-write-wins.
func (ctrl *OrderController) UpdateStatus(ctx context.Context, orderId string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := ctrl.orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := models.ValidateTransition(order.Status, next); err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := ctrl.orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": orderId, "status": order.Status},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: next},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrConflict
	}
	order.Status = next
	order.Updated_at = now
	return &order, nil
}

// Cancel is guarded by a status filter, so "already advanced" and "no such
// order" both surface as a zero match count.
func (ctrl *OrderController) Cancel(ctx context.Context, orderId string) (bool, error) {
	result, err := ctrl.orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": orderId, "status": models.OrderPending},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: models.OrderCancelled},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (ctrl *OrderController) Find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ctrl.orderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (ctrl *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request OrderRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := ctrl.Create(ctx, request)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func (ctrl *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		result, err := ctrl.WithItems(ctx, orderId)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctrl *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.OrderStatus(status).IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown order status %q", status)})
				return
			}
			filter["status"] = status
		}
		orders, err := ctrl.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctrl *OrderController) GetUserOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.GetString("uid")
		orders, err := ctrl.Find(ctx, bson.M{"user_id": userId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctrl *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := ctrl.UpdateStatus(ctx, orderId, body.Status)
		if err != nil {
			var transitionErr *models.InvalidTransitionError
			switch {
			case errors.As(err, &transitionErr):
				c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
			case errors.Is(err, ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "order was modified concurrently"})
			case errors.Is(err, ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *OrderController) CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		cancelled, err := ctrl.Cancel(ctx, orderId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while cancelling the order"})
			return
		}
		if !cancelled {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found or no longer pending"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": orderId, "status": models.OrderCancelled})
	}
}
