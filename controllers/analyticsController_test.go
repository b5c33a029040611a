package controllers

import (
	"testing"
	"time"

	"gopkg.in/go-playground/assert.v1"
)

func TestSalesWindowIsHalfOpen(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2026-08-01")
	end, _ := time.Parse("2006-01-02", "2026-08-31")

	window := salesWindow(start, end)
	assert.Equal(t, window[0].Key, "$gte")
	assert.Equal(t, window[0].Value, start)
	assert.Equal(t, window[1].Key, "$lt")
	assert.Equal(t, window[1].Value, end.AddDate(0, 0, 1))
}

func TestSalesWindowSingleDay(t *testing.T) {
	day, _ := time.Parse("2006-01-02", "2026-08-15")

	window := salesWindow(day, day)
	// a single-day range still spans that whole day
	assert.Equal(t, window[0].Value, day)
	assert.Equal(t, window[1].Value, day.AddDate(0, 0, 1))
}
