package keya

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Property 6: UID derivation vectors (bit-exact, must pass).
func TestDeriveVectors(t *testing.T) {
	vectors := []struct {
		uid, want string
	}{
		{"0456263a873a80", "29564af75805"},
		{"049c0bb2a03784", "c0b423c8e4c2"},
		{"04a0f02a3d2d80", "1e0615823120"},
		{"04b40c12a13780", "2737629f2ebe"},
		{"04d9fb8a763b80", "edb56de8a9fe"},
	}

	for _, v := range vectors {
		got, err := Derive(v.uid, 0)
		require.NoError(t, err)
		assert.Equal(t, v.want, got, "uid %s", v.uid)
	}
}

func TestDeriveSectorDoesNotAffectOutput(t *testing.T) {
	const uid = "0456263a873a80"
	base, err := Derive(uid, 0)
	require.NoError(t, err)

	for sector := 1; sector <= 4; sector++ {
		got, err := Derive(uid, sector)
		require.NoError(t, err)
		assert.Equal(t, base, got)
	}
}

func TestDeriveRejectsInvalidUID(t *testing.T) {
	cases := []string{
		"",
		"0456263a873a8",    // too short
		"0456263a873a8000", // too long
		"1456263a873a80",   // wrong manufacturer prefix
		"0456263A873A80",   // uppercase not accepted at this boundary
		"04zz263a873a80",   // non-hex
	}
	for _, c := range cases {
		_, err := Derive(c, 0)
		var target *ErrInvalidUID
		assert.ErrorAs(t, err, &target, "uid %q", c)
	}
}

func TestDeriveRejectsInvalidSector(t *testing.T) {
	_, err := Derive("0456263a873a80", 5)
	var target *ErrInvalidSector
	assert.ErrorAs(t, err, &target)

	_, err = Derive("0456263a873a80", -1)
	assert.ErrorAs(t, err, &target)
}
