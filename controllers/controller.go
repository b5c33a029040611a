package controllers

import (
	"errors"
	"math"

	"github.com/go-playground/validator"
)

var validate = validator.New()

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflicting concurrent update")
)

func toFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return math.Round(num*output) / output
}
