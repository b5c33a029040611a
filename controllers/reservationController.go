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

type ReservationController struct {
	reservationCollection *mongo.Collection
	tableCollection       *mongo.Collection
	tables                *TableController
}

func NewReservationController(db *database.Database, tables *TableController) *ReservationController {
	return &ReservationController{
		reservationCollection: db.OpenCollection("reservation"),
		tableCollection:       db.OpenCollection("table"),
		tables:                tables,
	}
}

// timesOverlap uses inclusive boundaries on purpose: two bookings sharing an
// exact boundary timestamp conflict, which leaves a turnover buffer between
// seatings. Times are zero-padded "HH:MM" strings, so string comparison is
// chronological.
func timesOverlap(resStart, resEnd, reqStart, reqEnd string) bool {
	return resStart <= reqEnd && resEnd >= reqStart
}

// overlappingTableIds collects the tables held by a pending or confirmed
// reservation whose time range overlaps the requested slot.
func overlappingTableIds(reservations []models.Reservation, reqStart, reqEnd string) map[string]bool {
	reserved := make(map[string]bool)
	for _, reservation := range reservations {
		if !reservation.Status.Blocks() {
			continue
		}
		if timesOverlap(*reservation.Start_time, *reservation.End_time, reqStart, reqEnd) {
			reserved[*reservation.Table_id] = true
		}
	}
	return reserved
}

// subtractReserved drops every table whose id appears in the reserved set.
func subtractReserved(tables []models.Table, reservedTableIds map[string]bool) []models.Table {
	available := make([]models.Table, 0, len(tables))
	for _, table := range tables {
		if !reservedTableIds[table.Table_id] {
			available = append(available, table)
		}
	}
	return available
}

// AvailableTables lists tables reservable for the requested slot: tables with
// status available, minus tables held by a pending or confirmed reservation
// overlapping the slot. A table marked occupied or maintenance never shows up
// here, even for a future slot with no conflicting reservation.
func (ctrl *ReservationController) AvailableTables(ctx context.Context, date, startTime, endTime string) ([]models.Table, error) {
	tables, err := ctrl.tables.Available(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := ctrl.reservationCollection.Find(ctx, bson.M{
		"date":   date,
		"status": bson.M{"$in": []models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed}},
	})
	if err != nil {
		return nil, err
	}
	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}

	return subtractReserved(tables, overlappingTableIds(reservations, startTime, endTime)), nil
}

func (ctrl *ReservationController) Create(ctx context.Context, reservation models.Reservation) (*models.Reservation, error) {
	var table models.Table
	err := ctrl.tableCollection.FindOne(ctx, bson.M{"table_id": reservation.Table_id}).Decode(&table)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reservation.Created_at = time.Now()
	reservation.Updated_at = reservation.Created_at
	reservation.ID = primitive.NewObjectID()
	reservation.Reservation_id = reservation.ID.Hex()
	if reservation.Status == "" {
		reservation.Status = models.ReservationPending
	}
	if _, err := ctrl.reservationCollection.InsertOne(ctx, reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (ctrl *ReservationController) GetAvailableTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		date := c.Query("date")
		startTime := c.Query("start_time")
		endTime := c.Query("end_time")
		if date == "" || startTime == "" || endTime == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date, start_time and end_time are required"})
			return
		}
		if startTime >= endTime {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be before end_time"})
			return
		}

		tables, err := ctrl.AvailableTables(ctx, date, startTime, endTime)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking availability"})
			return
		}
		c.JSON(http.StatusOK, tables)
	}
}

func (ctrl *ReservationController) CreateReservation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var reservation models.Reservation
		if err := c.BindJSON(&reservation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&reservation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		created, err := ctrl.Create(ctx, reservation)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "table was not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reservation was not created"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (ctrl *ReservationController) GetReservations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if date := c.Query("date"); date != "" {
			filter["date"] = date
		}
		if userId := c.Query("user_id"); userId != "" {
			filter["user_id"] = userId
		}
		cursor, err := ctrl.reservationCollection.Find(ctx, filter, options.Find().SetSort(bson.D{
			{Key: "date", Value: 1},
			{Key: "start_time", Value: 1},
		}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing reservations"})
			return
		}
		var reservations []models.Reservation
		if err := cursor.All(ctx, &reservations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing reservations"})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}

func (ctrl *ReservationController) UpdateReservationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		reservationId := c.Param("reservation_id")
		var body struct {
			Status models.ReservationStatus `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch body.Status {
		case models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled, models.ReservationCompleted:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reservation status"})
			return
		}

		result, err := ctrl.reservationCollection.UpdateOne(
			ctx,
			bson.M{"reservation_id": reservationId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "status", Value: body.Status},
				{Key: "updated_at", Value: time.Now()},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reservation update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
