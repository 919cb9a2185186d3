// Package interfaces provides internal interface definitions for toypad.
// These are separate from the public interfaces to avoid circular imports
// between the root package and the internal packages that implement it.
package interfaces

import (
	"context"
	"time"
)

// HIDTransport is the capability the engine needs from the USB HID layer.
// It is implemented by transport/hidraw for real hardware and by
// transport/fake for tests.
type HIDTransport interface {
	// Open enumerates and opens the first matching device. It returns
	// ErrNoDevice-equivalent errors through the caller's own error type;
	// this package does not define error values.
	Open(ctx context.Context) error

	// Close releases the device handle. Idempotent.
	Close() error

	// Write sends one 32-byte HID output report.
	Write(report [32]byte) error

	// Reports returns a channel of incoming 32-byte HID input reports.
	// Device removal is signalled on Removed, not by closing this channel;
	// whether Close closes it depends on the implementation.
	Reports() <-chan [32]byte

	// Removed returns a channel that is closed when the device disappears.
	Removed() <-chan struct{}
}

// Logger is the logging capability used throughout the engine. Backed by
// zap (internal/logging), in production and in this module's tests.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

// Observer receives metrics events from the engine. Implementations must be
// safe for concurrent use. An Observer may be nil; every component checks
// for nil before observing.
type Observer interface {
	ObserveCommandSent(opcode byte)
	ObserveResponseMatched(latency time.Duration)
	ObserveTimeout()
	ObserveTagEvent(zone byte, inserted bool)
	ObserveConnected(connected bool)
}

// AuthStrategy is the optional authentication hook run once per session
// before the first page read. The core never fabricates credentials: if
// no strategy is configured, authentication is treated as NotAuthenticated
// and reads proceed anyway, relying on the device's own status byte.
type AuthStrategy interface {
	Authenticate(ctx context.Context, t HIDTransport) error
}

// Clock abstracts time for deterministic timeout tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the real-time Clock used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time                         { return time.Now() }
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
