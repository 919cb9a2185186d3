// Package session implements the ToyPad session controller:
// the attach → Initialized → Running state machine that owns the HID
// handle exclusively, dispatches inbound frames to the message registry
// and tag tracker, and drains everything on detach.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/frame"
	"github.com/padbridge/toypad/internal/interfaces"
	"github.com/padbridge/toypad/internal/registry"
	"github.com/padbridge/toypad/internal/tracker"
)

// State is the session controller's lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateAttached
	StateInitialized
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateAttached:
		return "attached"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	default:
		return "disconnected"
	}
}

// AuthState mirrors Session State.auth field.
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthNotAuthenticated
	AuthAuthenticated
)

// Session owns the HID handle exclusively and runs the single dispatcher
// goroutine that mutates shared engine state (registry, tracker). Lighting
// and reader calls reach it only through Registry/Send, never by touching
// the transport directly.
type Session struct {
	transport  interfaces.HIDTransport
	registry   *registry.Registry
	tracker    *tracker.Tracker
	baseLogger interfaces.Logger
	logger     interfaces.Logger
	obs        interfaces.Observer
	auth       interfaces.AuthStrategy
	clock      interfaces.Clock

	writeMu sync.Mutex // serializes the HID write boundary, spec §5
	authMu  sync.Mutex // held for the whole of EnsureAuthenticated

	mu        sync.Mutex
	state     State
	authState AuthState
	sessionID string
	cancel    context.CancelFunc
	done      chan struct{}
}

// Config bundles a Session's collaborators.
type Config struct {
	Transport interfaces.HIDTransport
	Registry  *registry.Registry
	Tracker   *tracker.Tracker
	Logger    interfaces.Logger
	Observer  interfaces.Observer
	Auth      interfaces.AuthStrategy // may be nil
	Clock     interfaces.Clock
}

// New creates a disconnected Session.
func New(cfg Config) *Session {
	return &Session{
		transport:  cfg.Transport,
		registry:   cfg.Registry,
		tracker:    cfg.Tracker,
		baseLogger: cfg.Logger,
		logger:     cfg.Logger,
		obs:        cfg.Observer,
		auth:       cfg.Auth,
		clock:      cfg.Clock,
		state:      StateDisconnected,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connected reports whether the session is attached and running.
func (s *Session) Connected() bool {
	return s.State() == StateRunning
}

// AuthState returns the current authentication state.
func (s *Session) AuthState() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authState
}

// Attach opens the transport, sends the INIT blob, resets all per-session
// state (spec §3/§4.H: full reset on every attach), and starts the
// dispatcher goroutine. It returns a channel that is closed exactly once,
// when the session transitions back to Disconnected (removal or Detach).
func (s *Session) Attach(ctx context.Context) (<-chan struct{}, error) {
	if err := s.transport.Open(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = StateAttached
	s.authState = AuthUnknown
	s.sessionID = uuid.NewString()
	s.logger = s.baseLogger.With("session_id", s.sessionID)
	dispatchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.tracker.Reset()
	s.registry.DrainNotConnected()

	if err := s.sendInit(); err != nil {
		s.Detach()
		return nil, err
	}

	s.mu.Lock()
	s.state = StateInitialized
	s.mu.Unlock()

	s.mu.Lock()
	s.state = StateRunning
	s.mu.Unlock()

	if s.obs != nil {
		s.obs.ObserveConnected(true)
	}
	s.logger.Info("toypad session attached")

	go s.dispatchLoop(dispatchCtx)
	return done, nil
}

func (s *Session) sendInit() error {
	return s.Send(constants.InitBlob)
}

// Send writes one 32-byte report to the device, serialized at the write
// boundary per spec §5 (the only lock lighting/reader callers share).
func (s *Session) Send(report [32]byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.transport.Write(report); err != nil {
		return err
	}
	if s.obs != nil {
		s.obs.ObserveCommandSent(report[2])
	}
	return nil
}

// dispatchLoop is the single logical executor for inbound traffic: it is
// the only goroutine that calls registry.Resolve/Sweep and tracker.OnTagEvent.
func (s *Session) dispatchLoop(ctx context.Context) {
	sweepTicker := time.NewTicker(100 * time.Millisecond)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.transport.Removed():
			s.logger.Warn("toypad device removed")
			s.Detach()
			return
		case <-sweepTicker.C:
			s.registry.Sweep(s.clock.Now())
		case report, ok := <-s.transport.Reports():
			if !ok {
				return
			}
			s.handleReport(report)
		}
	}
}

func (s *Session) handleReport(report [32]byte) {
	s.registry.Sweep(s.clock.Now())

	p := frame.Parse(report)
	switch p.Kind {
	case frame.KindTagEvent:
		zone := tracker.Zone(p.TagEvent.Zone)
		action := tracker.ActionAdded
		if p.TagEvent.Action == constants.TagActionRemove {
			action = tracker.ActionRemoved
		}
		s.tracker.OnTagEvent(zone, action, tracker.UID(p.TagEvent.UID))
	case frame.KindResponse:
		s.registry.Resolve(p.Response.Msg, p.Response.Payload)
	default:
		s.logger.Debug("toypad: dropped unrecognized frame", "first_byte", report[0])
	}
}

// EnsureAuthenticated runs the configured AuthStrategy exactly once per
// session. If no strategy is configured, or it errors, the auth state
// becomes NotAuthenticated and the caller proceeds anyway: the device's own
// status byte is authoritative. Callers arriving while the strategy is
// running wait for it to finish.
func (s *Session) EnsureAuthenticated(ctx context.Context) {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.mu.Lock()
	if s.authState != AuthUnknown {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	var next AuthState = AuthNotAuthenticated
	if s.auth != nil {
		if err := s.auth.Authenticate(ctx, s.transport); err == nil {
			next = AuthAuthenticated
		} else {
			s.logger.Debug("toypad: auth strategy failed, proceeding unauthenticated", "error", err)
		}
	}

	s.mu.Lock()
	s.authState = next
	s.mu.Unlock()
}

// Detach tears the session down: cancels the dispatcher, closes the
// transport, drains the registry with NotConnected, clears the tracker,
// and marks the session Disconnected. Idempotent.
func (s *Session) Detach() {
	s.mu.Lock()
	if s.state == StateDisconnected {
		s.mu.Unlock()
		return
	}
	s.state = StateDisconnected
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	_ = s.transport.Close()
	s.registry.DrainNotConnected()
	s.tracker.Reset()

	if s.obs != nil {
		s.obs.ObserveConnected(false)
	}
	s.logger.Info("toypad session detached")

	s.mu.Lock()
	s.logger = s.baseLogger
	s.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		default:
			close(done)
		}
	}
}
