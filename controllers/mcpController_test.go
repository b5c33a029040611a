package controllers

import (
	"sort"
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestMCPToolTable(t *testing.T) {
	ctrl := NewMCPController(&ProductController{}, &OrderController{}, &ReservationController{})

	names := ctrl.ToolNames()
	sort.Strings(names)
	assert.Equal(t, names, []string{
		"createOrder",
		"createReservation",
		"getAvailableTables",
		"getCategories",
		"getProductDetails",
		"getUserOrders",
		"searchProducts",
	})
}

func TestUnmarshalParams(t *testing.T) {
	var p struct {
		Query string `json:"query"`
	}
	if err := unmarshalParams([]byte(`{"query":"pizza"}`), &p); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, p.Query, "pizza")

	if err := unmarshalParams(nil, &p); err != nil {
		t.Fatal("empty params should be accepted")
	}
	if err := unmarshalParams([]byte(`{bad json`), &p); err == nil {
		t.Fatal("malformed params should be rejected")
	}
}
