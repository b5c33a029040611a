package controllers

import (
	"context"
	"errors"
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

type TableController struct {
	tableCollection *mongo.Collection
}

func NewTableController(db *database.Database) *TableController {
	return &TableController{tableCollection: db.OpenCollection("table")}
}

func (ctrl *TableController) All(ctx context.Context) ([]models.Table, error) {
	cursor, err := ctrl.tableCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "table_number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (ctrl *TableController) Available(ctx context.Context) ([]models.Table, error) {
	cursor, err := ctrl.tableCollection.Find(ctx, bson.M{"status": models.TableAvailable})
	if err != nil {
		return nil, err
	}
	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (ctrl *TableController) GetTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tables, err := ctrl.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing tables"})
			return
		}
		c.JSON(http.StatusOK, tables)
	}
}

func (ctrl *TableController) GetTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tableId := c.Param("table_id")
		var table models.Table
		err := ctrl.tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the table"})
			return
		}
		c.JSON(http.StatusOK, table)
	}
}

func (ctrl *TableController) CreateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var table models.Table
		if err := c.BindJSON(&table); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&table); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := ctrl.tableCollection.CountDocuments(ctx, bson.M{"table_number": table.Table_number})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking the table number"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "table number already exists"})
			return
		}

		if table.Status == "" {
			table.Status = models.TableAvailable
		}
		table.Created_at = time.Now()
		table.Updated_at = table.Created_at
		table.ID = primitive.NewObjectID()
		table.Table_id = table.ID.Hex()

		if _, err := ctrl.tableCollection.InsertOne(ctx, table); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "table was not created"})
			return
		}
		c.JSON(http.StatusCreated, table)
	}
}

func (ctrl *TableController) UpdateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tableId := c.Param("table_id")
		var table models.Table
		if err := c.BindJSON(&table); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if table.Table_number != nil {
			updateObj = append(updateObj, bson.E{Key: "table_number", Value: table.Table_number})
		}
		if table.Capacity != nil {
			updateObj = append(updateObj, bson.E{Key: "capacity", Value: table.Capacity})
		}
		if table.Location != nil {
			updateObj = append(updateObj, bson.E{Key: "location", Value: table.Location})
		}
		if table.Status != "" {
			switch table.Status {
			case models.TableAvailable, models.TableOccupied, models.TableReserved, models.TableMaintenance:
				updateObj = append(updateObj, bson.E{Key: "status", Value: table.Status})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table status"})
				return
			}
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		result, err := ctrl.tableCollection.UpdateOne(
			ctx,
			bson.M{"table_id": tableId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "table update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
