//go:build !cgo

// Package hidraw without cgo cannot link hidapi/libusb. Builds without cgo
// get a Transport whose Open always fails clearly instead of a link error,
// matching the upstream karalabe/hid package's own constraint.
package hidraw

import (
	"context"
	"fmt"

	"github.com/padbridge/toypad/internal/interfaces"
)

// Transport is a non-functional placeholder when cgo is disabled.
type Transport struct{}

// New creates a Transport; Open will always fail.
func New() *Transport { return &Transport{} }

var _ interfaces.HIDTransport = (*Transport)(nil)

var errCgoDisabled = fmt.Errorf("hidraw: built without cgo; real HID transport unavailable (rebuild with CGO_ENABLED=1)")

func (t *Transport) Open(ctx context.Context) error  { return errCgoDisabled }
func (t *Transport) Close() error                    { return nil }
func (t *Transport) Write(report [32]byte) error     { return errCgoDisabled }
func (t *Transport) Reports() <-chan [32]byte        { return nil }
func (t *Transport) Removed() <-chan struct{}        { return nil }
