// Package toypad is the public API for the ToyPad protocol engine: attach
// to a USB HID "toy pad" peripheral, track per-zone NFC tag presence,
// drive its three-zone lighting, and read tag pages.
package toypad

import (
	"errors"
	"fmt"
)

// ErrorCode is the high-level error taxonomy from spec §7.
type ErrorCode string

const (
	ErrCodeNotConnected     ErrorCode = "not connected"
	ErrCodeTimeout          ErrorCode = "timeout"
	ErrCodeMalformed        ErrorCode = "malformed frame"
	ErrCodeDeviceError      ErrorCode = "device error"
	ErrCodeChecksumMismatch ErrorCode = "checksum mismatch"
	ErrCodeInvalidUID       ErrorCode = "invalid uid"
	ErrCodeInvalidSector    ErrorCode = "invalid sector"
	ErrCodeInvalidZone      ErrorCode = "invalid zone"
)

// Error is the structured error returned by every fallible engine call.
type Error struct {
	Op     string    // e.g. "ReadPages", "SetColor"
	Code   ErrorCode // high-level category
	Status byte      // device-reported status byte, only set for DeviceError
	Msg    string
	Inner  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Code == ErrCodeDeviceError {
		return fmt.Sprintf("toypad: %s: %s (status=0x%02x)", e.Op, msg, e.Status)
	}
	if e.Op != "" {
		return fmt.Sprintf("toypad: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("toypad: %s", msg)
}

func (e *Error) Unwrap() error { return e.Inner }

func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// NewError builds a structured *Error with the given op/code/message.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// NewDeviceError builds a DeviceError carrying the device's status byte.
func NewDeviceError(op string, status byte) *Error {
	return &Error{
		Op:     op,
		Code:   ErrCodeDeviceError,
		Status: status,
		Msg:    fmt.Sprintf("device reported non-zero status 0x%02x", status),
	}
}

// WrapError attaches op/code context to an arbitrary inner error.
func WrapError(op string, code ErrorCode, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is a *Error with the given Code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Sentinel errors for the common NotConnected case, so callers can compare
// with errors.Is(err, toypad.ErrNotConnected) without constructing a code.
var ErrNotConnected = &Error{Op: "", Code: ErrCodeNotConnected, Msg: "no attached session"}
