package utils

import (
	"errors"
	"fmt"
)

// ErrInvalidInputType is returned when a value of the wrong kind is handed to one of the utilities.
var ErrInvalidInputType = errors.New("invalid input type")

// InvalidInputTypeError reports the operation and the offending value. It unwraps to ErrInvalidInputType.
type InvalidInputTypeError struct {
	Op    string
	Value interface{}
}

func (e *InvalidInputTypeError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s: %v: %q", e.Op, ErrInvalidInputType, s)
	}
	return fmt.Sprintf("%s: %v: got %T", e.Op, ErrInvalidInputType, e.Value)
}

func (e *InvalidInputTypeError) Unwrap() error {
	return ErrInvalidInputType
}

func asText(op string, v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case []rune:
		return string(t), nil
	}
	return "", &InvalidInputTypeError{Op: op, Value: v}
}
