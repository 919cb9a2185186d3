// Package frame implements the ToyPad wire codec: building outgoing
// 32-byte command frames and parsing incoming 32-byte frames into either a
// tag event or a 0x55 response.
//
// Incoming responses encode the `len` byte two different ways depending on
// firmware. Parse tries both conventions (tryConventionA, tryConventionB)
// and keeps whichever validates by checksum.
package frame

import (
	"fmt"

	"github.com/padbridge/toypad/internal/constants"
)

// ErrArgsTooLong is returned by Build when args exceeds the 27-byte limit.
type ErrArgsTooLong struct{ Len int }

func (e *ErrArgsTooLong) Error() string {
	return fmt.Sprintf("frame: args length %d exceeds maximum of %d", e.Len, constants.MaxArgsLen)
}

// Build assembles an outgoing command frame: exactly 32 bytes, zero-padded,
// with a mod-256 checksum over everything from the preamble through the
// last argument byte.
func Build(opcode byte, msg byte, args []byte) ([constants.FrameSize]byte, error) {
	var out [constants.FrameSize]byte
	if len(args) > constants.MaxArgsLen {
		return out, &ErrArgsTooLong{Len: len(args)}
	}

	n := len(args)
	out[0] = constants.ResponsePreamble
	out[1] = byte(3 + n)
	out[2] = opcode
	out[3] = msg
	copy(out[4:4+n], args)

	var sum int
	for i := 0; i < 4+n; i++ {
		sum += int(out[i])
	}
	out[4+n] = byte(sum % 256)
	// remainder of out is already zero

	return out, nil
}

// Kind identifies what an incoming frame decoded to.
type Kind int

const (
	KindUnknown Kind = iota
	KindTagEvent
	KindResponse
)

// TagEvent is the decoded payload of a 0x56 frame.
type TagEvent struct {
	Zone    byte // 1..3
	Index   byte // 0..2, recorded but not used for addressing
	Action  byte // 0=insert, 1=remove
	UID     [7]byte
}

// Response is the decoded payload of a 0x55 frame.
type Response struct {
	Msg     byte
	Payload []byte
}

// Parsed is the result of Parse.
type Parsed struct {
	Kind     Kind
	TagEvent TagEvent
	Response Response
}

// Parse decodes one 32-byte incoming HID report.
func Parse(b [constants.FrameSize]byte) Parsed {
	if b[0] == constants.TagEventByte && b[1] == constants.TagEventLen {
		var uid [7]byte
		copy(uid[:], b[7:14])
		return Parsed{
			Kind: KindTagEvent,
			TagEvent: TagEvent{
				Zone:   b[2],
				Index:  b[4],
				Action: b[5],
				UID:    uid,
			},
		}
	}

	if b[0] == constants.ResponsePreamble {
		if payload, msg, ok := tryConventionA(b); ok {
			return Parsed{Kind: KindResponse, Response: Response{Msg: msg, Payload: payload}}
		}
		if payload, msg, ok := tryConventionB(b); ok {
			return Parsed{Kind: KindResponse, Response: Response{Msg: msg, Payload: payload}}
		}
		// Neither convention validated by checksum; best-effort fall back
		// to Convention A per spec §3 (some firmwares emit wrong checksums).
		payload, msg, _ := tryConventionA(b)
		return Parsed{Kind: KindResponse, Response: Response{Msg: msg, Payload: payload}}
	}

	return Parsed{Kind: KindUnknown}
}

// tryConventionA treats len as covering payload+checksum: payload is
// b[3 : 3+len-1], checksum is b[3+len-1].
func tryConventionA(b [constants.FrameSize]byte) (payload []byte, msg byte, ok bool) {
	length := int(b[1])
	msg = b[2]
	csIdx := 3 + length - 1
	if length < 1 || csIdx < 3 || csIdx >= constants.FrameSize {
		return nil, msg, false
	}
	payload = cloneSlice(b[3:csIdx])
	return payload, msg, validateChecksum(b, csIdx)
}

// tryConventionB treats len as covering msg+payload+checksum: payload is
// b[3 : 2+len-1], checksum is b[2+len-1].
func tryConventionB(b [constants.FrameSize]byte) (payload []byte, msg byte, ok bool) {
	length := int(b[1])
	msg = b[2]
	csIdx := 2 + length - 1
	if length < 2 || csIdx < 3 || csIdx >= constants.FrameSize {
		return nil, msg, false
	}
	payload = cloneSlice(b[3:csIdx])
	return payload, msg, validateChecksum(b, csIdx)
}

func validateChecksum(b [constants.FrameSize]byte, csIdx int) bool {
	var sum int
	for i := 0; i < csIdx; i++ {
		sum += int(b[i])
	}
	return byte(sum%256) == b[csIdx]
}

func cloneSlice(s []byte) []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}
