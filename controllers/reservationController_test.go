package controllers

import (
	"testing"

	"go-restaurant-ordering/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/go-playground/assert.v1"
)

func strPtr(s string) *string { return &s }

func TestTimesOverlapInclusiveBoundaries(t *testing.T) {
	// back-to-back bookings sharing an exact boundary conflict on purpose
	assert.Equal(t, timesOverlap("18:00", "20:00", "20:00", "22:00"), true)
	assert.Equal(t, timesOverlap("18:00", "20:00", "16:00", "18:00"), true)

	assert.Equal(t, timesOverlap("18:00", "20:00", "18:30", "19:30"), true)
	assert.Equal(t, timesOverlap("18:30", "19:30", "18:00", "20:00"), true)
	assert.Equal(t, timesOverlap("18:00", "20:00", "19:00", "21:00"), true)

	assert.Equal(t, timesOverlap("18:00", "20:00", "20:01", "22:00"), false)
	assert.Equal(t, timesOverlap("18:00", "20:00", "16:00", "17:59"), false)
}

func makeTable(id string, status models.TableStatus) models.Table {
	number := 1
	capacity := 4
	return models.Table{
		ID:           primitive.NewObjectID(),
		Table_id:     id,
		Table_number: &number,
		Capacity:     &capacity,
		Status:       status,
	}
}

func makeReservation(tableId, start, end string) models.Reservation {
	partySize := 2
	return models.Reservation{
		ID:         primitive.NewObjectID(),
		Table_id:   strPtr(tableId),
		Date:       strPtr("2026-09-01"),
		Start_time: strPtr(start),
		End_time:   strPtr(end),
		Party_size: &partySize,
		Status:     models.ReservationConfirmed,
	}
}

func TestOverlappingTableIds(t *testing.T) {
	cancelled := makeReservation("t4", "18:00", "20:00")
	cancelled.Status = models.ReservationCancelled

	reservations := []models.Reservation{
		makeReservation("t1", "18:00", "20:00"),
		makeReservation("t2", "12:00", "14:00"),
		makeReservation("t3", "20:00", "22:00"), // boundary with 18:00-20:00 request
		cancelled,
	}
	reserved := overlappingTableIds(reservations, "18:00", "20:00")
	assert.Equal(t, reserved["t1"], true)
	assert.Equal(t, reserved["t2"], false)
	assert.Equal(t, reserved["t3"], true)
	assert.Equal(t, reserved["t4"], false)
}

func TestSubtractReserved(t *testing.T) {
	tables := []models.Table{
		makeTable("t1", models.TableAvailable),
		makeTable("t2", models.TableAvailable),
		makeTable("t3", models.TableAvailable),
	}
	available := subtractReserved(tables, map[string]bool{"t2": true})
	assert.Equal(t, len(available), 2)
	assert.Equal(t, available[0].Table_id, "t1")
	assert.Equal(t, available[1].Table_id, "t3")
}

// Availability is the AND of table status and reservation overlap: the
// candidate set only ever contains status=available tables, so an occupied or
// maintenance table stays hidden even when nothing overlaps the requested
// slot.
func TestAvailabilityExcludesNonAvailableStatus(t *testing.T) {
	candidates := []models.Table{
		makeTable("t1", models.TableAvailable),
		// t2 occupied, t3 maintenance: never part of the candidate set the
		// status filter returns
	}
	available := subtractReserved(candidates, overlappingTableIds(nil, "18:00", "20:00"))
	assert.Equal(t, len(available), 1)
	assert.Equal(t, available[0].Table_id, "t1")
}
