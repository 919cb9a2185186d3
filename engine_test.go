package toypad

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/interfaces"
	"github.com/padbridge/toypad/internal/logging"
	"github.com/padbridge/toypad/transport/fake"
)

// fakeClock is a manually-advanced Clock for deterministic timeout tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ interfaces.Clock = (*fakeClock)(nil)

func newHarness(t *testing.T, clock interfaces.Clock) (*Engine, *fake.Transport) {
	t.Helper()
	tp := fake.New()
	e := New(Options{
		Transport: tp,
		Logger:    logging.NewLogger(&logging.Config{Pretty: true}),
		Clock:     clock,
	})
	ctx := context.Background()
	require.NoError(t, e.Start(ctx))
	t.Cleanup(e.Stop)
	return e, tp
}

func checksum(b []byte) byte {
	sum := 0
	for _, v := range b {
		sum += int(v)
	}
	return byte(sum % 256)
}

// Scenario A: attach emits INIT, then a tag-event frame is tracked and
// surfaced as an Added event with the zone snapshot updated.
func TestScenarioAttachAndTagInsert(t *testing.T) {
	e, tp := newHarness(t, interfaces.SystemClock{})

	writes := tp.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, constants.InitBlob, writes[0])

	events := e.TagEvents()

	var raw [32]byte
	raw[0] = 0x56
	raw[1] = 0x0B
	raw[2] = byte(ZoneLeft)
	raw[4] = 0x00 // index, unused for addressing
	raw[5] = 0x00 // insert
	uid := []byte{0x04, 0x56, 0x26, 0x3A, 0x87, 0x3A, 0x80}
	copy(raw[7:14], uid)
	tp.Inject(raw)

	select {
	case ev := <-events:
		assert.Equal(t, TagAdded, ev.Action)
		assert.Equal(t, ZoneLeft, ev.Zone)
		assert.Equal(t, "0456263A873A80", ev.UID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tag event")
	}

	require.Eventually(t, func() bool {
		return e.Zones()[ZoneLeft].Present
	}, time.Second, time.Millisecond)
	assert.Equal(t, "0456263A873A80", e.Zones()[ZoneLeft].UID)
}

// Scenario B: read_pages sends the documented command shape and returns
// exactly the injected data bytes.
func TestScenarioReadPagesSucceeds(t *testing.T) {
	e, tp := newHarness(t, interfaces.SystemClock{})

	var data [16]byte
	for i := range data {
		data[i] = byte(i + 1)
	}

	done := make(chan struct{})
	var got [16]byte
	var readErr error
	go func() {
		got, readErr = e.Reader.ReadPages(context.Background(), ZoneCenter, 0x24)
		close(done)
	}()

	var outbound [32]byte
	require.Eventually(t, func() bool {
		ws := tp.Writes()
		if len(ws) < 2 {
			return false
		}
		outbound = ws[len(ws)-1]
		return true
	}, time.Second, time.Millisecond)

	assert.Equal(t, byte(0x55), outbound[0])
	assert.Equal(t, byte(constants.OpReadPages), outbound[2])
	msg := outbound[3]
	assert.Equal(t, byte(ZoneCenter), outbound[4])
	assert.Equal(t, byte(0x24), outbound[5])

	var reply [32]byte
	reply[0] = 0x55
	reply[2] = msg
	payload := append([]byte{0x00}, data[:]...) // status=0, 16 data bytes
	// Convention A: len covers payload+checksum, so len = len(payload)+1.
	reply[1] = byte(len(payload) + 1)
	copy(reply[3:3+len(payload)], payload)
	csIdx := 3 + len(payload)
	reply[csIdx] = checksum(reply[:csIdx])
	tp.Inject(reply)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ReadPages")
	}

	require.NoError(t, readErr)
	assert.Equal(t, data, got)
}

// Scenario C: a read_pages with no response fails Timeout once its
// deadline passes. Slot reuse after a timeout is covered in
// internal/registry's TestTimeoutIsolation.
func TestScenarioReadPagesTimeout(t *testing.T) {
	clock := newFakeClock()
	e, _ := newHarness(t, clock)

	done := make(chan struct{})
	var readErr error
	go func() {
		_, readErr = e.Reader.ReadPages(context.Background(), ZoneCenter, 0x00)
		close(done)
	}()

	// Give the goroutine time to allocate its msg and send the request
	// before the deadline is moved past it.
	time.Sleep(20 * time.Millisecond)
	clock.advance(constants.DefaultRequestTimeout + time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected timeout within a couple of sweep ticks")
	}

	require.Error(t, readErr)
	assert.True(t, IsCode(readErr, ErrCodeTimeout))
}

// Scenario D: set_color(All, 0, 0, 0) emits the canonical lights-off frame.
func TestScenarioSetColorAllOff(t *testing.T) {
	e, tp := newHarness(t, interfaces.SystemClock{})

	require.NoError(t, e.Lighting.SetColor(ZoneAll, Color{}))

	ws := tp.Writes()
	require.Len(t, ws, 2) // INIT, then SetColor
	out := ws[1]
	assert.Equal(t, byte(0x55), out[0])
	assert.Equal(t, byte(constants.OpSolidColor), out[2])
	n := 5 // LightingSubCmd, zone, r, g, b
	assert.Equal(t, byte(3+n), out[1])
	assert.Equal(t, checksum(out[:4+n]), out[4+n])
	for i := 4 + n + 1; i < constants.FrameSize; i++ {
		assert.Equalf(t, byte(0), out[i], "byte %d should be zero padding", i)
	}
}

// Property 8: disconnect drains every outstanding request with
// NotConnected exactly once, and Connected ends up false.
func TestDisconnectDrainsOutstandingReads(t *testing.T) {
	e, tp := newHarness(t, interfaces.SystemClock{})

	const k = 3
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		go func() {
			_, err := e.Reader.ReadPages(context.Background(), ZoneCenter, 0)
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		return len(tp.Writes()) >= 1+k
	}, time.Second, time.Millisecond)

	tp.SimulateRemoval()

	for i := 0; i < k; i++ {
		select {
		case err := <-errs:
			require.Error(t, err)
			assert.True(t, IsCode(err, ErrCodeNotConnected))
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for drained read to fail")
		}
	}

	require.Eventually(t, func() bool { return !e.Connected() }, time.Second, time.Millisecond)
}
