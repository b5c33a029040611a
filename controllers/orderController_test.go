package controllers

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"gopkg.in/go-playground/assert.v1"
)

func TestBuildOrderItemsSnapshotsPrices(t *testing.T) {
	requests := []OrderItemRequest{
		{Product_id: "p1", Quantity: 2},
		{Product_id: "p2", Quantity: 1},
	}
	prices := map[string]float64{"p1": 1000, "p2": 500}

	items := buildOrderItems("order-1", requests, prices)
	assert.Equal(t, len(items), 2)
	for _, item := range items {
		assert.Equal(t, item.Order_id, "order-1")
		assert.NotEqual(t, item.Order_item_id, "")
	}
	assert.Equal(t, *items[0].Unit_price, 1000.0)
	assert.Equal(t, *items[1].Unit_price, 500.0)

	// the snapshot does not follow later catalog price changes
	prices["p1"] = 9999
	assert.Equal(t, *items[0].Unit_price, 1000.0)
}

func TestOrderTotal(t *testing.T) {
	items := buildOrderItems("order-1", []OrderItemRequest{
		{Product_id: "p1", Quantity: 2},
		{Product_id: "p2", Quantity: 1},
	}, map[string]float64{"p1": 1000, "p2": 500})

	assert.Equal(t, orderTotal(items), 2500.0)
	assert.Equal(t, orderQuantity(items), 3)
}

func TestOrderTotalRounding(t *testing.T) {
	items := buildOrderItems("order-1", []OrderItemRequest{
		{Product_id: "p1", Quantity: 3},
	}, map[string]float64{"p1": 3.333})

	// snapshot is rounded to cents before the total is computed
	assert.Equal(t, *items[0].Unit_price, 3.33)
	assert.Equal(t, orderTotal(items), 9.99)
}

func noMatchUpdateResponse() bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 0},
		bson.E{Key: "nModified", Value: 0},
	)
}

func TestCancelPendingOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pending order is cancelled", func(mt *mtest.T) {
		ctrl := &OrderController{orderCollection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		cancelled, err := ctrl.Cancel(context.Background(), "order-pending")
		if err != nil {
			mt.Fatal(err)
		}
		if !cancelled {
			mt.Fatal("pending order should be cancellable")
		}
	})
}

// Cancel filters on status=pending, so an order that advanced past pending
// and an id that never existed both come back as a zero match count: the
// caller cannot tell them apart.
func TestCancelNonPendingLooksLikeMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("both collapse to not cancelled", func(mt *mtest.T) {
		ctrl := &OrderController{orderCollection: mt.Coll}

		mt.AddMockResponses(noMatchUpdateResponse())
		fromAdvanced, err := ctrl.Cancel(context.Background(), "order-delivered")
		if err != nil {
			mt.Fatal(err)
		}

		mt.AddMockResponses(noMatchUpdateResponse())
		fromMissing, err := ctrl.Cancel(context.Background(), "no-such-order")
		if err != nil {
			mt.Fatal(err)
		}

		if fromAdvanced || fromMissing {
			mt.Fatalf("expected neither cancel to report success, got advanced=%v missing=%v", fromAdvanced, fromMissing)
		}
		if fromAdvanced != fromMissing {
			mt.Fatal("advanced and missing orders should be indistinguishable to the caller")
		}
	})
}

func TestToFixed(t *testing.T) {
	assert.Equal(t, toFixed(3.14159, 2), 3.14)
	assert.Equal(t, toFixed(2.006, 2), 2.01)
	assert.Equal(t, toFixed(10, 2), 10.0)
}
