package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uidFromBytes(b ...byte) UID {
	var u UID
	copy(u[:], b)
	return u
}

// Property 5: tag dedup.
func TestInsertDedup(t *testing.T) {
	tr := New(nil)
	events := tr.Subscribe()
	uid := uidFromBytes(0x04, 0x56, 0x26, 0x3A, 0x87, 0x3A, 0x80)

	for i := 0; i < 5; i++ {
		tr.OnTagEvent(ZoneLeft, ActionAdded, uid)
	}

	select {
	case e := <-events:
		assert.Equal(t, ActionAdded, e.Action)
		assert.Equal(t, ZoneLeft, e.Zone)
		assert.Equal(t, uid, e.UID)
	default:
		t.Fatal("expected one Added event")
	}
	select {
	case e := <-events:
		t.Fatalf("expected exactly one Added event, got extra %+v", e)
	default:
	}

	snap := tr.Snapshot()
	require.True(t, snap[ZoneLeft].Present)
	assert.Equal(t, uid, *snap[ZoneLeft].UID)

	tr.OnTagEvent(ZoneLeft, ActionRemoved, UID{})
	select {
	case e := <-events:
		assert.Equal(t, ActionRemoved, e.Action)
		assert.Equal(t, ZoneLeft, e.Zone)
	default:
		t.Fatal("expected one Removed event")
	}

	// A second remove with nothing present must drop silently.
	tr.OnTagEvent(ZoneLeft, ActionRemoved, UID{})
	select {
	case e := <-events:
		t.Fatalf("expected no event for redundant remove, got %+v", e)
	default:
	}

	snap = tr.Snapshot()
	assert.False(t, snap[ZoneLeft].Present)
	assert.Nil(t, snap[ZoneLeft].UID)
}

func TestDistinctUIDReplacesWithoutDedup(t *testing.T) {
	tr := New(nil)
	events := tr.Subscribe()
	uidA := uidFromBytes(0x04, 1, 2, 3, 4, 5, 6)
	uidB := uidFromBytes(0x04, 9, 8, 7, 6, 5, 4)

	tr.OnTagEvent(ZoneCenter, ActionAdded, uidA)
	<-events
	tr.OnTagEvent(ZoneCenter, ActionAdded, uidB)

	e := <-events
	assert.Equal(t, ActionAdded, e.Action)
	assert.Equal(t, uidB, e.UID)

	snap := tr.Snapshot()
	assert.Equal(t, uidB, *snap[ZoneCenter].UID)
}

func TestUIDHexRendersUppercase(t *testing.T) {
	u := uidFromBytes(0x04, 0x56, 0x26, 0x3a, 0x87, 0x3a, 0x80)
	assert.Equal(t, "0456263A873A80", u.Hex())
}

func TestResetClearsAllZones(t *testing.T) {
	tr := New(nil)
	tr.OnTagEvent(ZoneRight, ActionAdded, uidFromBytes(0x04, 1, 1, 1, 1, 1, 1))
	tr.Reset()
	snap := tr.Snapshot()
	for _, z := range []Zone{ZoneCenter, ZoneLeft, ZoneRight} {
		assert.False(t, snap[z].Present)
	}
}
