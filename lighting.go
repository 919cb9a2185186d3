package toypad

import (
	"github.com/padbridge/toypad/internal/constants"
	"github.com/padbridge/toypad/internal/frame"
	"github.com/padbridge/toypad/internal/session"
	"github.com/padbridge/toypad/internal/tracker"
)

// Color is an RGB triple, 0-255 per channel.
type Color struct {
	R, G, B byte
}

// lightingMsg is the fixed message tag stamped on lighting commands. They
// are fire-and-forget: no response is awaited, so no
// correlation with the registry is needed. If the device emits a 0x55 ack
// for this tag, it reaches the registry with no waiter registered and is
// dropped there.
const lightingMsg byte = 0x00

// FadeParams is one zone's parameters in a broadcast fade, per the
// per-zone block layout of the fade-all opcode.
type FadeParams struct {
	TickTime  byte
	TickCount byte // 0xFF means indefinite
	Color     Color
}

// FlashParams is one zone's parameters in a broadcast flash.
type FlashParams struct {
	TickOn    byte
	TickOff   byte
	TickCount byte // 0xFF means indefinite
	Color     Color
}

// Lighting drives the peripheral's three lighting zones. All calls are
// fire-and-forget: they return once the report is written, without waiting
// for any device acknowledgement.
type Lighting struct {
	session *session.Session
}

func newLighting(s *session.Session) *Lighting {
	return &Lighting{session: s}
}

func (l *Lighting) send(op string, opcode byte, args []byte) error {
	if !l.session.Connected() {
		return ErrNotConnected
	}
	report, err := frame.Build(opcode, lightingMsg, args)
	if err != nil {
		return WrapError(op, ErrCodeMalformed, err)
	}
	if err := l.session.Send(report); err != nil {
		return WrapError(op, ErrCodeNotConnected, err)
	}
	return nil
}

// SetColor sets a zone to a solid color, replacing whatever it currently
// shows. Unlike every other lighting call, zone=All is valid here: it
// broadcasts the same solid color to center, left and right at once. The
// canonical "lights off" request is SetColor(ZoneAll, Color{}).
func (l *Lighting) SetColor(zone Zone, c Color) error {
	args := []byte{constants.LightingSubCmd, byte(zone), c.R, c.G, c.B}
	return l.send("SetColor", constants.OpSolidColor, args)
}

// Fade interpolates a single zone toward c over tickCount steps of
// tickTime device ticks each. tickCount=0xFF means indefinite. zone=All is
// not valid here; use FadeAll for a broadcast fade.
func (l *Lighting) Fade(zone Zone, tickTime, tickCount byte, c Color) error {
	z, err := zone.single()
	if err != nil {
		return err
	}
	args := []byte{constants.LightingSubCmd, byte(z), tickTime, tickCount, c.R, c.G, c.B}
	return l.send("Fade", constants.OpFade, args)
}

// FadeAll fades all three zones at once, each with its own parameters. The
// device requires the three per-zone blocks in center, left, right order;
// FadeAll enforces that order regardless of call-site argument naming.
func (l *Lighting) FadeAll(center, left, right FadeParams) error {
	args := make([]byte, 0, 1+3*6)
	args = append(args, constants.LightingSubCmd)
	for _, block := range []struct {
		zone tracker.Zone
		p    FadeParams
	}{
		{tracker.ZoneCenter, center},
		{tracker.ZoneLeft, left},
		{tracker.ZoneRight, right},
	} {
		args = append(args, byte(block.zone), block.p.TickTime, block.p.TickCount,
			block.p.Color.R, block.p.Color.G, block.p.Color.B)
	}
	return l.send("FadeAll", constants.OpFadeAll, args)
}

// Flash pulses a single zone between off and c. zone=All is not valid
// here; use FlashAll for a broadcast flash.
func (l *Lighting) Flash(zone Zone, tickOn, tickOff, tickCount byte, c Color) error {
	z, err := zone.single()
	if err != nil {
		return err
	}
	args := []byte{constants.LightingSubCmd, byte(z), tickOn, tickOff, tickCount, c.R, c.G, c.B}
	return l.send("Flash", constants.OpFlash, args)
}

// FlashAll flashes all three zones at once, each with its own parameters,
// in the device-required center, left, right order.
func (l *Lighting) FlashAll(center, left, right FlashParams) error {
	args := make([]byte, 0, 1+3*7)
	args = append(args, constants.LightingSubCmd)
	for _, block := range []struct {
		zone tracker.Zone
		p    FlashParams
	}{
		{tracker.ZoneCenter, center},
		{tracker.ZoneLeft, left},
		{tracker.ZoneRight, right},
	} {
		args = append(args, byte(block.zone), block.p.TickOn, block.p.TickOff, block.p.TickCount,
			block.p.Color.R, block.p.Color.G, block.p.Color.B)
	}
	return l.send("FlashAll", constants.OpFlashAll, args)
}
