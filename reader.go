package toypad

import (
	"context"
	"time"

	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/frame"
	"github.com/padbridge/toypad/internal/registry"
	"github.com/padbridge/toypad/internal/session"
)

// Reader reads NFC tag page data from a single zone.
type Reader struct {
	session  *session.Session
	registry *registry.Registry
	timeout  time.Duration
}

func newReader(s *session.Session, r *registry.Registry, timeout time.Duration) *Reader {
	return &Reader{session: s, registry: r, timeout: timeout}
}

// ReadPages reads 16 bytes starting at startPage from the tag currently
// present in zone. It authenticates the session on first use, allocates a
// correlation tag, sends the read_pages command, and waits for either the
// matching response, a timeout, or context cancellation.
func (r *Reader) ReadPages(ctx context.Context, zone Zone, startPage byte) ([16]byte, error) {
	var out [16]byte

	if !r.session.Connected() {
		return out, ErrNotConnected
	}

	z, err := zone.single()
	if err != nil {
		return out, err
	}

	r.session.EnsureAuthenticated(ctx)

	msg, waiter := r.registry.Allocate(registry.KindReadPages, r.timeout)

	report, err := frame.Build(constants.OpReadPages, msg, []byte{byte(z), startPage})
	if err != nil {
		r.registry.Cancel(msg)
		return out, WrapError("ReadPages", ErrCodeMalformed, err)
	}

	if err := r.session.Send(report); err != nil {
		r.registry.Cancel(msg)
		return out, WrapError("ReadPages", ErrCodeNotConnected, err)
	}

	select {
	case <-ctx.Done():
		r.registry.Cancel(msg)
		return out, WrapError("ReadPages", ErrCodeTimeout, ctx.Err())
	case res := <-waiter:
		return decodeReadPagesResult(res)
	}
}

func decodeReadPagesResult(res registry.Result) ([16]byte, error) {
	var out [16]byte

	switch res.Reason {
	case registry.FailureTimeout:
		return out, NewError("ReadPages", ErrCodeTimeout, "no response within deadline")
	case registry.FailureNotConnected:
		return out, ErrNotConnected
	case registry.FailureSuperseded:
		return out, NewError("ReadPages", ErrCodeTimeout, "message tag reused before a response arrived")
	}

	payload := res.Payload
	if len(payload) < 1 {
		return out, NewError("ReadPages", ErrCodeMalformed, "empty response payload")
	}

	status := payload[0]
	if status != 0 {
		return out, NewDeviceError("ReadPages", status)
	}

	data := payload[1:]
	if len(data) < 16 {
		return out, NewError("ReadPages", ErrCodeMalformed, "response payload shorter than 16 bytes")
	}
	copy(out[:], data[:16])
	return out, nil
}
