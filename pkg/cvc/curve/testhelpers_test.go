package curve_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	orderHex    = "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"
	orderM1Hex  = "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632550"
	genHex      = "046b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
	negGenHex   = "046b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296b01cbd1c01e58065711814b583f061e9d431cca994cea1313449bf97c840ae0a"
	twoGenHex   = "047cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc4766997807775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1"
	threeGenHex = "045ecbe4d1a6330a44c8f7ef951d4bf165e6c6b721efada985fb41661bc6e7fd6c8734640c4998ff7e374b06ce1a64a2ecd82ab036384fb83d9a79b127a27d5032"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// scalarBytes returns the 32-byte big-endian encoding of a small value.
func scalarBytes(v byte) []byte {
	b := make([]byte, 32)
	b[31] = v
	return b
}
