package models

import (
	"errors"
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderPending, OrderPreparing},
		{OrderPending, OrderCancelled},
		{OrderPreparing, OrderReady},
		{OrderReady, OrderDelivered},
	}
	for _, tc := range allowed {
		if err := ValidateTransition(tc.from, tc.to); err != nil {
			t.Errorf("transition %s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
	}

	rejected := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderDelivered, OrderPending},
		{OrderDelivered, OrderPreparing},
		{OrderCancelled, OrderPending},
		{OrderPreparing, OrderCancelled},
		{OrderReady, OrderPreparing},
		{OrderPending, OrderDelivered},
	}
	for _, tc := range rejected {
		err := ValidateTransition(tc.from, tc.to)
		if err == nil {
			t.Errorf("transition %s -> %s should be rejected", tc.from, tc.to)
			continue
		}
		var transitionErr *InvalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Errorf("transition %s -> %s: expected InvalidTransitionError, got %v", tc.from, tc.to, err)
			continue
		}
		assert.Equal(t, transitionErr.From, tc.from)
		assert.Equal(t, transitionErr.To, tc.to)
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	err := ValidateTransition(OrderPending, OrderStatus("shipped"))
	if err == nil {
		t.Fatal("unknown target status should be rejected")
	}
	var transitionErr *InvalidTransitionError
	if errors.As(err, &transitionErr) {
		t.Fatal("unknown status should not be reported as a transition error")
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.Equal(t, OrderDelivered.CanTransitionTo(OrderPending), false)
	assert.Equal(t, OrderCancelled.CanTransitionTo(OrderPreparing), false)
	assert.Equal(t, len(orderTransitions[OrderDelivered]), 0)
	assert.Equal(t, len(orderTransitions[OrderCancelled]), 0)
}

func TestReservationStatusBlocks(t *testing.T) {
	assert.Equal(t, ReservationPending.Blocks(), true)
	assert.Equal(t, ReservationConfirmed.Blocks(), true)
	assert.Equal(t, ReservationCancelled.Blocks(), false)
	assert.Equal(t, ReservationCompleted.Blocks(), false)
}
