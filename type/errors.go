package i2stypes

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrDecode          = errors.New("decode image failed")
	ErrTrace           = errors.New("trace failed")
)

// SettingsError 某个设置项越界或取值不支持
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %s %s", e.Field, e.Reason)
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

func rangeError(field string, v, lo, hi float64) error {
	return &SettingsError{
		Field:  field,
		Reason: fmt.Sprintf("%v out of range [%v, %v]", v, lo, hi),
	}
}
