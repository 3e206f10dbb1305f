package utils

import (
	"math"
	"strconv"
	"strings"
)

// CelsiusToFahrenheit returns c*9/5 + 32. Any value is accepted, including ones below absolute zero.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// CelsiusToFahrenheitValue converts any Go integer or float. Everything else, bool included, is rejected.
func CelsiusToFahrenheitValue(v interface{}) (float64, error) {
	c, ok := asNumber(v)
	if !ok {
		return 0, &InvalidInputTypeError{Op: "celsius to fahrenheit", Value: v}
	}
	return CelsiusToFahrenheit(c), nil
}

// ParseCelsius reads a temperature typed by a user, e.g. "37.5" or "-40". NaN and infinities are not temperatures.
func ParseCelsius(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	c, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, &InvalidInputTypeError{Op: "celsius to fahrenheit", Value: s}
	}
	return c, nil
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
