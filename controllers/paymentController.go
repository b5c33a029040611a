package controllers

import (
	"bytes"
	"context"
	"encoding/json"
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

// PaymentGateway forwards capture requests to the hosted payment provider.
// The provider side (hosted checkout, webhook verification) is opaque to this
// service.
type PaymentGateway struct {
	URL    string
	Client *http.Client
}

func NewPaymentGateway(url string) *PaymentGateway {
	return &PaymentGateway{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type GatewayResult struct {
	Success                 bool    `json:"success"`
	Error                   *string `json:"error,omitempty"`
	RedirectUrl             *string `json:"redirectUrl,omitempty"`
	Provider_transaction_id *string `json:"provider_transaction_id,omitempty"`
	Provider_status         *string `json:"provider_status,omitempty"`
}

func (g *PaymentGateway) Process(ctx context.Context, transactionId string, amount float64, paymentData map[string]interface{}) (*GatewayResult, error) {
	payload, err := json.Marshal(gin.H{
		"transaction_id": transactionId,
		"amount":         amount,
		"payment_data":   paymentData,
	})
	if err != nil {
		return nil, err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := g.Client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("gateway returned status %d", response.StatusCode)
	}

	var result GatewayResult
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

type PaymentController struct {
	transactionCollection   *mongo.Collection
	paymentMethodCollection *mongo.Collection
	orderCollection         *mongo.Collection
	gateway                 *PaymentGateway
}

func NewPaymentController(db *database.Database, gateway *PaymentGateway) *PaymentController {
	return &PaymentController{
		transactionCollection:   db.OpenCollection("paymentTransaction"),
		paymentMethodCollection: db.OpenCollection("paymentMethod"),
		orderCollection:         db.OpenCollection("order"),
		gateway:                 gateway,
	}
}

// forceDefault decides the is_default flag for a new payment method: the
// user's first method is always the default, whatever the caller sent.
func forceDefault(existingCount int64, requested bool) bool {
	return existingCount == 0 || requested
}

// CreateTransaction inserts the transaction and then mirrors the linkage onto
// the order. Two sequential writes; a failure of the second leaves a
// transaction with no order back-reference.
func (ctrl *PaymentController) CreateTransaction(ctx context.Context, orderId string, paymentMethodId *string) (*models.PaymentTransaction, error) {
	var order models.Order
	err := ctrl.orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	transaction := models.PaymentTransaction{
		ID:                primitive.NewObjectID(),
		Order_id:          orderId,
		Payment_method_id: paymentMethodId,
		Amount:            order.Total_amount,
		Status:            models.PaymentPending,
		Created_at:        now,
		Updated_at:        now,
	}
	transaction.Transaction_id = transaction.ID.Hex()

	if _, err := ctrl.transactionCollection.InsertOne(ctx, transaction); err != nil {
		return nil, err
	}

	_, err = ctrl.orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": orderId},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "payment_transaction_id", Value: transaction.Transaction_id},
			{Key: "payment_status", Value: models.PaymentPending},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// SetTransactionStatus updates the transaction and mirrors the status onto
// the parent order's payment_status.
func (ctrl *PaymentController) SetTransactionStatus(ctx context.Context, transactionId string, status models.PaymentStatus, providerFields primitive.D) (*models.PaymentTransaction, error) {
	updateObj := append(primitive.D{
		bson.E{Key: "status", Value: status},
		bson.E{Key: "updated_at", Value: time.Now()},
	}, providerFields...)

	var transaction models.PaymentTransaction
	err := ctrl.transactionCollection.FindOneAndUpdate(
		ctx,
		bson.M{"transaction_id": transactionId},
		bson.D{{Key: "$set", Value: updateObj}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&transaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err = ctrl.orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": transaction.Order_id},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "payment_status", Value: status},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (ctrl *PaymentController) CreatePaymentTransaction() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Order_id          string  `json:"order_id" validate:"required"`
			Payment_method_id *string `json:"payment_method_id"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		transaction, err := ctrl.CreateTransaction(ctx, body.Order_id, body.Payment_method_id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction was not created"})
			return
		}
		c.JSON(http.StatusCreated, transaction)
	}
}

// ProcessPayment threads the transaction id created beforehand through to the
// gateway and records the outcome on both the transaction and the order.
func (ctrl *PaymentController) ProcessPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Transaction_id string                 `json:"transaction_id" validate:"required"`
			Payment_data   map[string]interface{} `json:"payment_data"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var transaction models.PaymentTransaction
		err := ctrl.transactionCollection.FindOne(ctx, bson.M{"transaction_id": body.Transaction_id}).Decode(&transaction)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the transaction"})
			return
		}
		if transaction.Status != models.PaymentPending {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("transaction is already %s", transaction.Status)})
			return
		}

		result, err := ctrl.gateway.Process(ctx, transaction.Transaction_id, transaction.Amount, body.Payment_data)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "payment gateway unavailable"})
			return
		}

		status := models.PaymentRejected
		if result.Success {
			status = models.PaymentApproved
		}
		var providerFields primitive.D
		if result.Provider_transaction_id != nil {
			providerFields = append(providerFields, bson.E{Key: "provider_transaction_id", Value: result.Provider_transaction_id})
		}
		if result.Provider_status != nil {
			providerFields = append(providerFields, bson.E{Key: "provider_status", Value: result.Provider_status})
		}
		if _, err := ctrl.SetTransactionStatus(ctx, transaction.Transaction_id, status, providerFields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment result"})
			return
		}

		response := gin.H{"success": result.Success}
		if result.Error != nil {
			response["error"] = *result.Error
		}
		if result.RedirectUrl != nil {
			response["redirectUrl"] = *result.RedirectUrl
		}
		c.JSON(http.StatusOK, response)
	}
}

func (ctrl *PaymentController) UpdateTransactionStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		transactionId := c.Param("transaction_id")
		var body struct {
			Status models.PaymentStatus `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch body.Status {
		case models.PaymentPending, models.PaymentApproved, models.PaymentRejected, models.PaymentRefunded, models.PaymentCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status"})
			return
		}

		transaction, err := ctrl.SetTransactionStatus(ctx, transactionId, body.Status, nil)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction update failed"})
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func (ctrl *PaymentController) GetPaymentMethods() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.GetString("uid")
		cursor, err := ctrl.paymentMethodCollection.Find(ctx, bson.M{"user_id": userId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing payment methods"})
			return
		}
		var methods []models.PaymentMethod
		if err := cursor.All(ctx, &methods); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

func (ctrl *PaymentController) CreatePaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.GetString("uid")
		var method models.PaymentMethod
		if err := c.BindJSON(&method); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&method); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := ctrl.paymentMethodCollection.CountDocuments(ctx, bson.M{"user_id": userId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking payment methods"})
			return
		}

		method.User_id = userId
		method.Is_default = forceDefault(count, method.Is_default)
		method.Created_at = time.Now()
		method.Updated_at = method.Created_at
		method.ID = primitive.NewObjectID()
		method.Payment_method_id = method.ID.Hex()

		// at most one default per user: clear the rest first, then insert.
		// Not a database constraint, so a crash between the two steps leaves
		// zero defaults.
		if method.Is_default && count > 0 {
			_, err := ctrl.paymentMethodCollection.UpdateMany(
				ctx,
				bson.M{"user_id": userId},
				bson.D{{Key: "$set", Value: bson.D{{Key: "is_default", Value: false}}}},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while clearing default methods"})
				return
			}
		}
		if _, err := ctrl.paymentMethodCollection.InsertOne(ctx, method); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment method was not created"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

func (ctrl *PaymentController) SetDefaultPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.GetString("uid")
		methodId := c.Param("payment_method_id")

		_, err := ctrl.paymentMethodCollection.UpdateMany(
			ctx,
			bson.M{"user_id": userId},
			bson.D{{Key: "$set", Value: bson.D{{Key: "is_default", Value: false}}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while clearing default methods"})
			return
		}
		result, err := ctrl.paymentMethodCollection.UpdateOne(
			ctx,
			bson.M{"user_id": userId, "payment_method_id": methodId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "is_default", Value: true},
				{Key: "updated_at", Value: time.Now()},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment method update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctrl *PaymentController) DeletePaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.GetString("uid")
		methodId := c.Param("payment_method_id")
		result, err := ctrl.paymentMethodCollection.DeleteOne(ctx, bson.M{"user_id": userId, "payment_method_id": methodId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment method delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": methodId})
	}
}
