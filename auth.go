package toypad

import (
	"context"

	"github.com/padbridge/toypad/internal/interfaces"
)

// AuthStrategy is the optional, pluggable authentication hook run once per
// session before the first page read. The core never
// fabricates or derives credentials on its own: without a configured
// strategy, a session is simply NotAuthenticated and reads proceed anyway,
// relying on the device's own status byte to reject unauthenticated access.
type AuthStrategy interface {
	Authenticate(ctx context.Context, t HIDTransport) error
}

// HIDTransport is the capability surface an AuthStrategy is given. It is a
// narrow, write-only view: auth strategies may write vendor-specific
// handshake reports but are never handed the shared read channel.
type HIDTransport interface {
	Write(report [32]byte) error
}

// transportAuthAdapter narrows the internal transport interface down to the
// HIDTransport surface exposed to external AuthStrategy implementations.
type transportAuthAdapter struct {
	inner interfaces.HIDTransport
}

func (a transportAuthAdapter) Write(report [32]byte) error { return a.inner.Write(report) }

// authStrategyAdapter adapts a public AuthStrategy to the internal
// interfaces.AuthStrategy contract used by internal/session.
type authStrategyAdapter struct {
	strategy AuthStrategy
}

func (a authStrategyAdapter) Authenticate(ctx context.Context, t interfaces.HIDTransport) error {
	return a.strategy.Authenticate(ctx, transportAuthAdapter{inner: t})
}

// NoAuth is the default AuthStrategy: it never authenticates, leaving every
// session NotAuthenticated. Page reads still proceed; a locked sector
// simply surfaces as a DeviceError with the device's status byte.
type NoAuth struct{}

func (NoAuth) Authenticate(ctx context.Context, t HIDTransport) error {
	return NewError("Authenticate", ErrCodeNotConnected, "no auth strategy configured")
}
