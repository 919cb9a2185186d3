// Package keya implements the ToyPad "Key A" derivation: a
// pure, stateless function mapping a 7-byte NFC UID to the 6-byte access
// key compatible NFC readers use for sector authentication.
//
// This has no engine dependency and no device interaction: a caller can
// derive the key offline given only a UID read from a tag event.
package keya

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
)

// pre and post are the fixed byte sequences the UID is sandwiched between
// before hashing, bit-exact.
var (
	pre  = mustHex("0a14fd0507ff4bcd026ba83f0a3b89a9")
	post = mustHex("286329204469736e65792032303133")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err) // constants are fixed and known-good at compile time
	}
	return b
}

var uidPattern = regexp.MustCompile(`^04[0-9a-f]{12}$`)

// ErrInvalidUID is returned when uidHex fails the `^04[0-9a-f]{12}$` check.
type ErrInvalidUID struct{ UID string }

func (e *ErrInvalidUID) Error() string { return fmt.Sprintf("keya: invalid uid %q", e.UID) }

// ErrInvalidSector is returned when sector is outside 0..4.
type ErrInvalidSector struct{ Sector int }

func (e *ErrInvalidSector) Error() string {
	return fmt.Sprintf("keya: invalid sector %d (want 0..4)", e.Sector)
}

// Derive computes Key A for a 14-lowercase-hex-character UID and a sector
// in 0..4, rendered as 12 lowercase hex characters (6 bytes).
//
// sector is validated but does not affect the output: the same UID always
// yields the same Key A regardless of which sector it is meant to unlock.
func Derive(uidHex string, sector int) (string, error) {
	if !uidPattern.MatchString(uidHex) {
		return "", &ErrInvalidUID{UID: uidHex}
	}
	if sector < 0 || sector > 4 {
		return "", &ErrInvalidSector{Sector: sector}
	}

	uidBytes, err := hex.DecodeString(uidHex)
	if err != nil {
		// unreachable given uidPattern already validated hex content
		return "", &ErrInvalidUID{UID: uidHex}
	}

	buf := make([]byte, 0, len(pre)+len(uidBytes)+len(post))
	buf = append(buf, pre...)
	buf = append(buf, uidBytes...)
	buf = append(buf, post...)

	digest := sha1.Sum(buf)

	key := []byte{digest[3], digest[2], digest[1], digest[0], digest[7], digest[6]}
	return hex.EncodeToString(key), nil
}
