// Package fake provides a deterministic, in-memory implementation of
// interfaces.HIDTransport for tests. It plays the same role the teacher's
// in-memory backend played for block-device tests: a fully-controllable
// stand-in for real hardware that records what the engine sends and lets
// a test script feed back whatever input reports and removal timing it
// needs.
package fake

import (
	"context"
	"sync"

	"github.com/padbridge/toypad/internal/interfaces"
)

// Transport is a fake HIDTransport. The zero value, which is what New
// returns, is an unopened Transport; Open makes it usable.
type Transport struct {
	mu       sync.Mutex
	open     bool
	writes   [][32]byte
	reports  chan [32]byte
	removed  chan struct{}
	closeErr error
}

// New creates a Transport not yet open.
func New() *Transport {
	return &Transport{}
}

var _ interfaces.HIDTransport = (*Transport)(nil)

func (f *Transport) Open(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.reports = make(chan [32]byte, 64)
	f.removed = make(chan struct{})
	return nil
}

func (f *Transport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return nil
	}
	f.open = false
	close(f.reports)
	return f.closeErr
}

func (f *Transport) Write(report [32]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, report)
	return nil
}

func (f *Transport) Reports() <-chan [32]byte { return f.reports }

func (f *Transport) Removed() <-chan struct{} { return f.removed }

// Writes returns a copy of every report the engine has written so far, in
// call order, for test assertions (Property 1/2, Scenario B/D).
func (f *Transport) Writes() [][32]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][32]byte, len(f.writes))
	copy(out, f.writes)
	return out
}

// Inject delivers one synthetic input report to the engine, as if the
// device had sent it.
func (f *Transport) Inject(report [32]byte) {
	f.mu.Lock()
	open := f.open
	f.mu.Unlock()
	if !open {
		return
	}
	f.reports <- report
}

// SimulateRemoval closes the Removed channel, as the real transport would
// on device unplug. No-op if the transport isn't open.
func (f *Transport) SimulateRemoval() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return
	}
	close(f.removed)
}
