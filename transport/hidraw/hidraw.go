//go:build cgo

// Package hidraw is the real interfaces.HIDTransport adapter, built on
// github.com/karalabe/hid (libusb/hidapi via cgo). It enumerates the
// peripheral by VID/PID, opens it, and pumps input reports from hidapi's
// blocking Read loop onto a channel the engine's single dispatcher
// goroutine drains.
package hidraw

import (
	"context"
	"fmt"
	"sync"

	"github.com/karalabe/hid"
	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/interfaces"
)

// Transport is the cgo/hidapi-backed HIDTransport.
type Transport struct {
	mu      sync.Mutex
	dev     *hid.Device
	reports chan [32]byte
	removed chan struct{}
	cancel  context.CancelFunc
}

// New creates an unopened Transport.
func New() *Transport {
	return &Transport{}
}

var _ interfaces.HIDTransport = (*Transport)(nil)

// ErrNoDevice is returned by Open when no matching VID/PID device is
// enumerated.
var ErrNoDevice = fmt.Errorf("hidraw: no toy pad found (vid=0x%04x pid=0x%04x)", constants.VendorID, constants.ProductID)

func (t *Transport) Open(ctx context.Context) error {
	infos, err := hid.Enumerate(constants.VendorID, constants.ProductID)
	if err != nil {
		return fmt.Errorf("hidraw: enumerate: %w", err)
	}
	if len(infos) == 0 {
		return ErrNoDevice
	}

	dev, err := infos[0].Open()
	if err != nil {
		return fmt.Errorf("hidraw: open: %w", err)
	}

	t.mu.Lock()
	t.dev = dev
	t.reports = make(chan [32]byte, 16)
	t.removed = make(chan struct{})
	readCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()

	go t.readLoop(readCtx)
	return nil
}

func (t *Transport) readLoop(ctx context.Context) {
	buf := make([]byte, constants.FrameSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		t.mu.Lock()
		dev := t.dev
		t.mu.Unlock()
		if dev == nil {
			return
		}

		n, err := dev.ReadTimeout(buf, 200)
		if err != nil {
			close(t.removed)
			return
		}
		if n == 0 {
			continue // timeout, loop to re-check ctx
		}

		var report [32]byte
		copy(report[:], buf[:n])
		select {
		case t.reports <- report:
		case <-ctx.Done():
			return
		}
	}
}

func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	if t.dev == nil {
		return nil
	}
	err := t.dev.Close()
	t.dev = nil
	return err
}

func (t *Transport) Write(report [32]byte) error {
	t.mu.Lock()
	dev := t.dev
	t.mu.Unlock()
	if dev == nil {
		return fmt.Errorf("hidraw: write on closed transport")
	}
	_, err := dev.Write(report[:])
	return err
}

func (t *Transport) Reports() <-chan [32]byte { return t.reports }

func (t *Transport) Removed() <-chan struct{} { return t.removed }
