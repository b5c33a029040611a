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

type ProductController struct {
	productCollection  *mongo.Collection
	categoryCollection *mongo.Collection
}

func NewProductController(db *database.Database) *ProductController {
	return &ProductController{
		productCollection:  db.OpenCollection("product"),
		categoryCollection: db.OpenCollection("category"),
	}
}

// Search matches name or description case-insensitively; an empty query
// returns the whole catalog.
func (ctrl *ProductController) Search(ctx context.Context, query string, categoryId string) ([]models.Product, error) {
	filter := bson.M{}
	if query != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"description": bson.M{"$regex": query, "$options": "i"}},
		}
	}
	if categoryId != "" {
		filter["category_id"] = categoryId
	}
	cursor, err := ctrl.productCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (ctrl *ProductController) ByID(ctx context.Context, productId string) (*models.Product, error) {
	var product models.Product
	err := ctrl.productCollection.FindOne(ctx, bson.M{"product_id": productId}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (ctrl *ProductController) Categories(ctx context.Context) ([]models.Category, error) {
	cursor, err := ctrl.categoryCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (ctrl *ProductController) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		products, err := ctrl.Search(ctx, c.Query("q"), c.Query("category_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func (ctrl *ProductController) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		product, err := ctrl.ByID(ctx, c.Param("product_id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func (ctrl *ProductController) GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		categories, err := ctrl.Categories(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func (ctrl *ProductController) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var product models.Product
		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var category models.Category
		if err := ctrl.categoryCollection.FindOne(ctx, bson.M{"category_id": product.Category_id}).Decode(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category was not found"})
			return
		}

		product.Created_at = time.Now()
		product.Updated_at = product.Created_at
		product.ID = primitive.NewObjectID()
		product.Product_id = product.ID.Hex()
		price := toFixed(*product.Price, 2)
		product.Price = &price

		if _, err := ctrl.productCollection.InsertOne(ctx, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product was not created"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func (ctrl *ProductController) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		productId := c.Param("product_id")
		var product models.Product
		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if product.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: product.Name})
		}
		if product.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: product.Description})
		}
		if product.Price != nil {
			price := toFixed(*product.Price, 2)
			updateObj = append(updateObj, bson.E{Key: "price", Value: price})
		}
		if product.Category_id != nil {
			updateObj = append(updateObj, bson.E{Key: "category_id", Value: product.Category_id})
		}
		if product.Image_url != nil {
			updateObj = append(updateObj, bson.E{Key: "image_url", Value: product.Image_url})
		}
		updateObj = append(updateObj, bson.E{Key: "available", Value: product.Available})
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		result, err := ctrl.productCollection.UpdateOne(
			ctx,
			bson.M{"product_id": productId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctrl *ProductController) CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var category models.Category
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category.Created_at = time.Now()
		category.Updated_at = category.Created_at
		category.ID = primitive.NewObjectID()
		category.Category_id = category.ID.Hex()

		if _, err := ctrl.categoryCollection.InsertOne(ctx, category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category was not created"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
