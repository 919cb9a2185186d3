package toypad

import (
	"fmt"

	"github.com/padbridge/toypad/internal/tracker"
)

// Zone is the public wire-encoded zone identifier. All is only
// valid for lighting calls.
type Zone byte

const (
	ZoneAll    Zone = 0
	ZoneCenter Zone = 1
	ZoneLeft   Zone = 2
	ZoneRight  Zone = 3
)

func (z Zone) String() string {
	switch z {
	case ZoneAll:
		return "all"
	case ZoneCenter:
		return "center"
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	default:
		return fmt.Sprintf("zone(%d)", byte(z))
	}
}

// single converts a Zone to its internal tracker.Zone, rejecting All.
func (z Zone) single() (tracker.Zone, error) {
	switch z {
	case ZoneCenter, ZoneLeft, ZoneRight:
		return tracker.Zone(z), nil
	default:
		return 0, NewError("", ErrCodeInvalidZone, fmt.Sprintf("zone %s is not valid here", z))
	}
}

// ZoneState is the public snapshot of one zone's tag presence.
type ZoneState struct {
	Present bool
	UID     string // 14 uppercase hex chars, empty when not Present
}

func zoneStateFrom(s tracker.ZoneState) ZoneState {
	if !s.Present || s.UID == nil {
		return ZoneState{}
	}
	return ZoneState{Present: true, UID: s.UID.Hex()}
}

// TagAction distinguishes insertion from removal in TagEvent.
type TagAction int

const (
	TagAdded TagAction = iota
	TagRemoved
)

// TagEvent is the public, causally-ordered tag notification.
type TagEvent struct {
	Action TagAction
	Zone   Zone
	UID    string // 14 uppercase hex chars, empty for TagRemoved
}
