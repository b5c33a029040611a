package controllers

import (
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestForceDefaultFirstMethod(t *testing.T) {
	// the user's first method becomes the default no matter what was sent
	assert.Equal(t, forceDefault(0, false), true)
	assert.Equal(t, forceDefault(0, true), true)
}

func TestForceDefaultExistingMethods(t *testing.T) {
	assert.Equal(t, forceDefault(3, false), false)
	assert.Equal(t, forceDefault(3, true), true)
}
