package toypad

import (
	"context"
	"sync"
	"time"

	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/interfaces"
	"github.com/padbridge/toypad/internal/logging"
	"github.com/padbridge/toypad/internal/registry"
	"github.com/padbridge/toypad/internal/session"
	"github.com/padbridge/toypad/internal/tracker"
	"github.com/padbridge/toypad/transport/hidraw"
)

// Options configures an Engine. A zero Options is valid: it builds a real
// hidraw transport, a default zap logger, and no metrics Observer.
type Options struct {
	// Transport overrides the HID transport, e.g. transport/fake.Transport
	// in tests. Defaults to a real hidraw.Transport.
	Transport interfaces.HIDTransport

	// Logger overrides the engine's logger. Defaults to internal/logging's
	// default zap-backed Logger.
	Logger interfaces.Logger

	// Metrics, if set, receives Prometheus observations. A nil Metrics is
	// safe to use directly (all its methods are nil-safe).
	Metrics *Metrics

	// Auth is the optional authentication hook run once per session before
	// the first page read. Defaults to NoAuth (always NotAuthenticated).
	Auth AuthStrategy

	// Clock overrides time, for tests. Defaults to interfaces.SystemClock.
	Clock interfaces.Clock

	// RequestTimeout bounds how long ReadPages waits for a matching
	// response before failing with ErrCodeTimeout. Defaults to
	// constants.DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// Engine is the public entry point for the ToyPad protocol engine: attach
// to a device, track tag presence across its three zones, drive lighting,
// and read tag pages.
type Engine struct {
	session  *session.Session
	registry *registry.Registry
	tracker  *tracker.Tracker
	logger   interfaces.Logger
	obs      interfaces.Observer

	Lighting *Lighting
	Reader   *Reader

	mu      sync.Mutex
	running <-chan struct{}
}

// New builds an Engine from Options, wiring the registry, tracker and
// session the way the teacher's backend wires its queue, uapi codec and
// ctrl plane: each component owns one narrow concern, composed by this
// constructor rather than any of them reaching into the others' state.
func New(opts Options) *Engine {
	transport := opts.Transport
	if transport == nil {
		transport = hidraw.New()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	var obs interfaces.Observer
	if opts.Metrics != nil {
		obs = opts.Metrics
	}

	clock := opts.Clock
	if clock == nil {
		clock = interfaces.SystemClock{}
	}

	auth := opts.Auth
	if auth == nil {
		auth = NoAuth{}
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = constants.DefaultRequestTimeout
	}

	reg := registry.New(clock, obs)
	trk := tracker.New(obs)

	sess := session.New(session.Config{
		Transport: transport,
		Registry:  reg,
		Tracker:   trk,
		Logger:    logger,
		Observer:  obs,
		Auth:      authStrategyAdapter{strategy: auth},
		Clock:     clock,
	})

	return &Engine{
		session:  sess,
		registry: reg,
		tracker:  trk,
		logger:   logger,
		obs:      obs,
		Lighting: newLighting(sess),
		Reader:   newReader(sess, reg, requestTimeout),
	}
}

// Start attaches to the device. It blocks until the session is fully
// running (INIT sent, dispatcher started) or attach fails.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	done, err := e.session.Attach(ctx)
	if err != nil {
		return WrapError("Start", ErrCodeNotConnected, err)
	}
	e.running = done
	return nil
}

// Stop detaches the session. Idempotent.
func (e *Engine) Stop() {
	e.session.Detach()
}

// Done returns a channel closed when the session drops back to
// disconnected, whether from Stop or device removal. Callers that want to
// react to unexpected removal should select on this channel.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Connected reports whether the engine currently has a running session.
func (e *Engine) Connected() bool {
	return e.session.Connected()
}

// Zones returns the current tag presence snapshot for all three zones.
func (e *Engine) Zones() map[Zone]ZoneState {
	snap := e.tracker.Snapshot()
	out := make(map[Zone]ZoneState, len(snap))
	for z, s := range snap {
		out[Zone(z)] = zoneStateFrom(s)
	}
	return out
}

// TagEvents returns a channel of future, deduplicated tag insert/remove
// events across all zones.
func (e *Engine) TagEvents() <-chan TagEvent {
	raw := e.tracker.Subscribe()
	out := make(chan TagEvent, 32)
	go func() {
		for ev := range raw {
			te := TagEvent{Zone: Zone(ev.Zone)}
			if ev.Action == tracker.ActionAdded {
				te.Action = TagAdded
				te.UID = ev.UID.Hex()
			} else {
				te.Action = TagRemoved
			}
			select {
			case out <- te:
			default:
			}
		}
		close(out)
	}()
	return out
}
