package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-restaurant-ordering/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AnalyticsController struct {
	orderCollection     *mongo.Collection
	orderItemCollection *mongo.Collection
}

func NewAnalyticsController(db *database.Database) *AnalyticsController {
	return &AnalyticsController{
		orderCollection:     db.OpenCollection("order"),
		orderItemCollection: db.OpenCollection("orderItem"),
	}
}

// salesWindow is the half-open day range [start, day after end): an order
// created at exactly midnight after endDate falls outside it.
func salesWindow(startDate, endDate time.Time) bson.D {
	return bson.D{
		{Key: "$gte", Value: startDate},
		{Key: "$lt", Value: endDate.AddDate(0, 0, 1)},
	}
}

// GetSales aggregates delivered-order revenue between two dates.
func (ctrl *AnalyticsController) GetSales() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		startDate, err := time.Parse("2006-01-02", c.Param("startDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date format"})
			return
		}
		endDate, err := time.Parse("2006-01-02", c.Param("endDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date format"})
			return
		}

		match := bson.D{{Key: "$match", Value: bson.D{
			{Key: "status", Value: "delivered"},
			{Key: "created_at", Value: salesWindow(startDate, endDate)},
		}}}
		group := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_sales", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
			{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
		project := bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "total_sales", Value: 1},
			{Key: "order_count", Value: 1},
		}}}

		cursor, err := ctrl.orderCollection.Aggregate(ctx, mongo.Pipeline{match, group, project})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating sales"})
			return
		}
		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating sales"})
			return
		}
		if len(results) == 0 {
			c.JSON(http.StatusOK, gin.H{"total_sales": 0, "order_count": 0})
			return
		}
		c.JSON(http.StatusOK, results[0])
	}
}

// GetOrderStatusCounts groups orders by status.
func (ctrl *AnalyticsController) GetOrderStatusCounts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		group := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
		project := bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "status", Value: "$_id"},
			{Key: "count", Value: 1},
		}}}

		cursor, err := ctrl.orderCollection.Aggregate(ctx, mongo.Pipeline{group, project})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while counting orders"})
			return
		}
		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while counting orders"})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

// GetTopProducts ranks products by total quantity ordered.
func (ctrl *AnalyticsController) GetTopProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}

		group := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "total_quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$quantity", "$unit_price"}},
			}}}},
		}}}
		sort := bson.D{{Key: "$sort", Value: bson.D{{Key: "total_quantity", Value: -1}}}}
		limitStage := bson.D{{Key: "$limit", Value: limit}}
		lookup := bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "product"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "product_id"},
			{Key: "as", Value: "product"},
		}}}
		unwind := bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}}
		project := bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "product_id", Value: "$_id"},
			{Key: "product_name", Value: "$product.name"},
			{Key: "total_quantity", Value: 1},
			{Key: "total_revenue", Value: 1},
		}}}

		cursor, err := ctrl.orderItemCollection.Aggregate(ctx, mongo.Pipeline{group, sort, limitStage, lookup, unwind, project})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while ranking products"})
			return
		}
		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while ranking products"})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}
