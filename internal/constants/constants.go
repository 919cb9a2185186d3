// Package constants holds protocol and timing constants shared across the
// toypad engine's internal packages.
package constants

import "time"

// USB identity of the peripheral.
const (
	VendorID  = 0x0E6F
	ProductID = 0x0241
)

// Frame layout.
const (
	FrameSize      = 32
	MaxArgsLen     = 27 // 32 - len(preamble+len+opcode+msg+checksum)
	TagEventByte   = 0x56
	TagEventLen    = 0x0B
	ResponsePreamble = 0x55
)

// Opcodes used by outgoing command frames.
const (
	OpInit        = 0xB0
	OpReadPages   = 0xD2
	OpSolidColor  = 0xC0
	OpFade        = 0xC2
	OpFlash       = 0xC3
	OpFadeAll     = 0xC6
	OpFlashAll    = 0xC7
)

// Tag event actions.
const (
	TagActionInsert = 0x00
	TagActionRemove = 0x01
)

// LightingSubCmd is the fixed byte every lighting opcode (solid/fade/flash,
// single-zone or broadcast) carries as the first argument byte, per spec
// §4.F's opcode table.
const LightingSubCmd byte = 0x02

// DefaultRequestTimeout is the default deadline for an outstanding request
// awaiting a 0x55 response.
const DefaultRequestTimeout = 800 * time.Millisecond

// InitialMsgCounter is the value the rolling message tag starts at on
// every attach/reattach.
const InitialMsgCounter byte = 0x01

// InitBlob is the fixed 32-byte output report sent once per attach to wake
// the peripheral. Only the first 18 bytes are meaningful; the remainder is
// zero padding.
var InitBlob = [FrameSize]byte{
	0x55, 0x0F, 0xB0, 0x01, 0x28, 0x63, 0x29, 0x20,
	0x4C, 0x45, 0x47, 0x4F, 0x20, 0x32, 0x30, 0x31,
	0x34, 0xF7,
}
