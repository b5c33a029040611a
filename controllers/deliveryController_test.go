package controllers

import (
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestRoutePointsEndsAtDestination(t *testing.T) {
	start := Coordinate{Latitude: 40.0, Longitude: -74.0}
	end := Coordinate{Latitude: 41.0, Longitude: -73.0}

	points := routePoints(start, end, 20)
	assert.Equal(t, len(points), 20)
	last := points[len(points)-1]
	assert.Equal(t, last.Latitude, end.Latitude)
	assert.Equal(t, last.Longitude, end.Longitude)
}

func TestRoutePointsAreMonotonic(t *testing.T) {
	start := Coordinate{Latitude: 10.0, Longitude: 10.0}
	end := Coordinate{Latitude: 20.0, Longitude: 30.0}

	points := routePoints(start, end, 10)
	previous := start
	for i, point := range points {
		if point.Latitude <= previous.Latitude || point.Longitude <= previous.Longitude {
			t.Fatalf("point %d is not strictly between start and end: %+v", i, point)
		}
		previous = point
	}
}

func TestRoutePointsMinimumSteps(t *testing.T) {
	start := Coordinate{Latitude: 1, Longitude: 1}
	end := Coordinate{Latitude: 2, Longitude: 2}

	points := routePoints(start, end, 0)
	assert.Equal(t, len(points), 1)
	assert.Equal(t, points[0].Latitude, end.Latitude)
}
