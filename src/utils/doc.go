// Package utils holds the small text and number helpers answered by the bot: rune-safe string reversal,
// whitespace word counting and Celsius to Fahrenheit conversion. Every function is pure and safe to call
// from any number of goroutines.
//
// The *Value variants accept untyped input (decoded config, chat payloads) and report a value of the wrong
// kind with an error wrapping ErrInvalidInputType.
package utils
