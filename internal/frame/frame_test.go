package frame

import (
	"testing"

	"github.com/padbridge/toypad/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Property 1: Checksum law.
func TestBuildChecksumLaw(t *testing.T) {
	args := []byte{0x01, 0x02, 0x03, 0x04}
	const opcode, msg = 0xC0, 0x07

	out, err := Build(opcode, msg, args)
	require.NoError(t, err)

	sum := 0
	for i := 0; i < 4+len(args); i++ {
		sum += int(out[i])
	}
	want := byte(sum % 256)
	assert.Equal(t, want, out[4+len(args)])
}

// Property 2: Frame length: always 32 bytes, zero padding after checksum.
func TestBuildFrameLength(t *testing.T) {
	out, err := Build(0xC0, 0x01, []byte{0, 0, 0})
	require.NoError(t, err)
	assert.Len(t, out, constants.FrameSize)

	csIdx := 4 + 3
	for i := csIdx + 1; i < constants.FrameSize; i++ {
		assert.Equalf(t, byte(0), out[i], "byte %d should be zero padding", i)
	}
}

func TestBuildRejectsOversizedArgs(t *testing.T) {
	_, err := Build(0xC0, 0x01, make([]byte, constants.MaxArgsLen+1))
	require.Error(t, err)
}

// Scenario D: set_color(All, 0, 0, 0), solid color opcode, sub-command
// byte 0x02, zone=All(0), r=g=b=0.
func TestBuildSolidOffAll(t *testing.T) {
	out, err := Build(constants.OpSolidColor, 0x00, []byte{0x02, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), out[0])
	assert.Equal(t, byte(0x08), out[1]) // len = 3 + len(args) = 3 + 5
	assert.Equal(t, byte(0xC0), out[2])

	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(out[i])
	}
	assert.Equal(t, byte(sum%256), out[8])
	for i := 9; i < constants.FrameSize; i++ {
		assert.Equalf(t, byte(0), out[i], "byte %d should be zero padding", i)
	}
}

func frameFromBytes(b []byte) [constants.FrameSize]byte {
	var f [constants.FrameSize]byte
	copy(f[:], b)
	return f
}

// Property 3: dual length convention parse.
func TestParseConventionA(t *testing.T) {
	// payload = 2 bytes {0x00, 0xAA}, checksum covers payload+checksum -> len=3
	raw := make([]byte, constants.FrameSize)
	raw[0] = 0x55
	raw[2] = 0x09 // msg
	raw[3] = 0x00
	raw[4] = 0xAA
	length := 3 // payload(2)+checksum(1)
	raw[1] = byte(length)
	csIdx := 3 + length - 1
	sum := 0
	for i := 0; i < csIdx; i++ {
		sum += int(raw[i])
	}
	raw[csIdx] = byte(sum % 256)

	p := Parse(frameFromBytes(raw))
	require.Equal(t, KindResponse, p.Kind)
	assert.Equal(t, byte(0x09), p.Response.Msg)
	assert.Equal(t, []byte{0x00, 0xAA}, p.Response.Payload)
}

func TestParseConventionB(t *testing.T) {
	raw := make([]byte, constants.FrameSize)
	raw[0] = 0x55
	raw[2] = 0x0B // msg
	raw[3] = 0x01
	raw[4] = 0x02
	// len covers msg+payload+checksum: msg(1)+payload(2)+checksum(1) = 4
	length := 4
	raw[1] = byte(length)
	csIdx := 2 + length - 1
	sum := 0
	for i := 0; i < csIdx; i++ {
		sum += int(raw[i])
	}
	raw[csIdx] = byte(sum % 256)

	p := Parse(frameFromBytes(raw))
	require.Equal(t, KindResponse, p.Kind)
	assert.Equal(t, byte(0x0B), p.Response.Msg)
	assert.Equal(t, []byte{0x01, 0x02}, p.Response.Payload)
}

func TestParseTagEvent(t *testing.T) {
	raw := make([]byte, constants.FrameSize)
	raw[0] = 0x56
	raw[1] = 0x0B
	raw[2] = 0x02 // zone = Left
	raw[4] = 0x00 // index
	raw[5] = 0x00 // insert
	uid := []byte{0x04, 0x56, 0x26, 0x3A, 0x87, 0x3A, 0x80}
	copy(raw[7:14], uid)

	p := Parse(frameFromBytes(raw))
	require.Equal(t, KindTagEvent, p.Kind)
	assert.EqualValues(t, 0x02, p.TagEvent.Zone)
	assert.EqualValues(t, 0x00, p.TagEvent.Action)
	assert.Equal(t, uid, p.TagEvent.UID[:])
}

func TestParseFallsBackToConventionAOnChecksumMismatch(t *testing.T) {
	raw := make([]byte, constants.FrameSize)
	raw[0] = 0x55
	raw[1] = 0x03
	raw[2] = 0x01
	raw[3] = 0x99
	raw[4] = 0xFF // wrong checksum for either convention

	p := Parse(frameFromBytes(raw))
	require.Equal(t, KindResponse, p.Kind)
	assert.Equal(t, byte(0x01), p.Response.Msg)
}
