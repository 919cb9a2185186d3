// Package registry implements the ToyPad message registry: it
// allocates the rolling 1-byte message tag, holds pending continuations
// keyed by that tag, matches inbound responses to their waiter, and sweeps
// expired entries on a deadline.
//
// The shape mirrors the teacher's per-tag state tracking in its queue
// runner (a bounded map of in-flight correlation ids, each resolved
// exactly once) scaled down from an mmap'd ring of depth N to a plain map
// since at most a handful of ToyPad requests are ever in flight at once.
package registry

import (
	"sync"
	"time"

	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/interfaces"
)

// Kind distinguishes the two shapes of awaited response the engine issues.
type Kind int

const (
	KindGeneric Kind = iota
	KindReadPages
)

// FailureReason is delivered to a waiter instead of a payload when a
// pending request cannot be resolved normally.
type FailureReason int

const (
	FailureNone FailureReason = iota
	FailureTimeout
	FailureNotConnected
	FailureSuperseded // the msg slot was reused before a response arrived
)

// Result is what a waiter receives: either Payload is set (success) or
// Reason explains the failure.
type Result struct {
	Payload []byte
	Reason  FailureReason
}

type pending struct {
	kind        Kind
	waiter      chan Result
	allocatedAt time.Time
	deadline    time.Time
	resolved    bool
}

// Registry owns the set of outstanding requests. All public methods are
// safe for concurrent use; internally a single mutex guards the pending
// map, matching "single logical executor" model applied to just
// this piece of shared state (lighting/read callers may be concurrent
// goroutines, but they only ever touch the map through these methods).
type Registry struct {
	mu      sync.Mutex
	counter byte
	pending map[byte]*pending
	clock   interfaces.Clock
	obs     interfaces.Observer
}

// New creates a Registry starting its counter at the spec-mandated initial
// value. clock and obs may be overridden for tests; obs may be nil.
func New(clock interfaces.Clock, obs interfaces.Observer) *Registry {
	return &Registry{
		counter: constants.InitialMsgCounter,
		pending: make(map[byte]*pending),
		clock:   clock,
		obs:     obs,
	}
}

// Allocate returns the next rolling message tag and a channel that will
// receive exactly one Result: the matching response, a timeout, or a
// supersede/drain failure. If a pending entry already exists for the
// returned tag (wraparound collision), it is failed with FailureSuperseded
// and replaced.
func (r *Registry) Allocate(kind Kind, timeout time.Duration) (byte, <-chan Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := r.counter
	r.counter++ // wrapping add; skipping 0 is not required

	if old, ok := r.pending[msg]; ok && !old.resolved {
		r.failLocked(old, FailureSuperseded)
	}

	now := r.clock.Now()
	p := &pending{kind: kind, waiter: make(chan Result, 1), allocatedAt: now, deadline: now.Add(timeout)}
	r.pending[msg] = p
	return msg, p.waiter
}

// Resolve delivers payload to the waiter registered for msg, if any. A
// frame for an unregistered msg (e.g. a lighting ack nobody is waiting on)
// is dropped silently.
func (r *Registry) Resolve(msg byte, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[msg]
	if !ok || p.resolved {
		return
	}
	delete(r.pending, msg)
	p.resolved = true
	if r.obs != nil {
		r.obs.ObserveResponseMatched(r.clock.Now().Sub(p.allocatedAt))
	}
	p.waiter <- Result{Payload: payload}
}

// Sweep fails and removes every pending entry whose deadline has passed.
// Called on a timer and opportunistically on every inbound frame, per spec
// §4.C.
func (r *Registry) Sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for msg, p := range r.pending {
		if p.resolved {
			continue
		}
		if now.After(p.deadline) || now.Equal(p.deadline) {
			r.failLocked(p, FailureTimeout)
			delete(r.pending, msg)
		}
	}
}

// DrainNotConnected fails every outstanding request with FailureNotConnected
// and clears the registry. Called on session detach and
// resets the counter for the next attach.
func (r *Registry) DrainNotConnected() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for msg, p := range r.pending {
		if !p.resolved {
			r.failLocked(p, FailureNotConnected)
			n++
		}
		delete(r.pending, msg)
	}
	r.counter = constants.InitialMsgCounter
	return n
}

// Cancel deregisters msg without delivering anything further to its
// waiter; used when a caller abandons a read_pages call (context
// cancellation) so a late response is dropped instead of resolving
// nothing.
func (r *Registry) Cancel(msg byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pending[msg]; ok && !p.resolved {
		p.resolved = true
		delete(r.pending, msg)
	}
}

func (r *Registry) failLocked(p *pending, reason FailureReason) {
	p.resolved = true
	if reason == FailureTimeout && r.obs != nil {
		r.obs.ObserveTimeout()
	}
	select {
	case p.waiter <- Result{Reason: reason}:
	default:
	}
}
