package h2f_test

import (
	"bytes"
	"crypto"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/cloudflare/circl/expander"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNextID/cvc-go/pkg/cvc/h2f"
)

const expanderDST = "QUUX-V01-CS02-with-expander-SHA256-128"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func sha256Hash(t *testing.T) h2f.Hash {
	t.Helper()
	h, err := h2f.Lookup(h2f.SHA2, 32)
	require.NoError(t, err)
	return h
}

// RFC 9380, appendix K.1.
func TestExpandMessageXMDVectors(t *testing.T) {
	tests := []struct {
		msg  string
		n    int
		want string
	}{
		{"", 0x20, "68a985b87eb6b46952128911f2a4412bbc302a9d759667f87f7a21d803f07235"},
		{"abc", 0x20, "d8ccab23b5985ccea865c6c97b6e5b8350e794e603b4b97902f53a8a0d605615"},
		{"abc", 0x80, "abba86a6129e366fc877aab32fc4ffc70120d8996c88aee2fe4b32d6c7b6437a" +
			"647e6c3163d40b76a73cf6a5674ef1d890f95b664ee0afa5359a5c4e07985635" +
			"bbecbac65d747d3d2da7ec2b8221b17b0ca9dc8a1ac1c07ea6a1e60583e2cb00" +
			"058e77b7b72a298425cd1b941ad4ec65e8afc50303a22c0f99b0509b4c895f40"},
	}
	h := sha256Hash(t)
	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			got, err := h2f.ExpandMessageXMD(h, []byte(expanderDST), []byte(tc.msg), tc.n)
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tc.want), got)
		})
	}
}

func TestExpandMessageXMDMatchesCircl(t *testing.T) {
	h := sha256Hash(t)
	dst := []byte("CVC-XMD-ORACLE")
	exp := expander.NewExpanderMD(crypto.SHA256, dst)

	msgs := [][]byte{nil, []byte("q128_"), bytes.Repeat([]byte{0xa5}, 1000)}
	for _, msg := range msgs {
		for _, n := range []int{1, 31, 32, 33, 48, 96, 255, 1024, 8160} {
			got, err := h2f.ExpandMessageXMD(h, dst, msg, n)
			require.NoError(t, err)
			assert.Equal(t, exp.Expand(msg, uint(n)), got, "len(msg)=%d n=%d", len(msg), n)
		}
	}
}

func TestExpandMessageXMDLimits(t *testing.T) {
	h := sha256Hash(t)
	dst := []byte(expanderDST)

	assert.Equal(t, 8160, h2f.MaxExpansionLength(h))

	_, err := h2f.ExpandMessageXMD(h, dst, nil, 8161)
	require.ErrorIs(t, err, h2f.ErrExpansionTooLarge)

	_, err = h2f.ExpandMessageXMD(h, dst, nil, 0)
	require.ErrorIs(t, err, h2f.ErrInvalidParams)

	_, err = h2f.ExpandMessageXMD(h, nil, nil, 32)
	require.ErrorIs(t, err, h2f.ErrInvalidParams)

	_, err = h2f.ExpandMessageXMD(h2f.Hash{}, dst, nil, 32)
	require.ErrorIs(t, err, h2f.ErrInvalidParams)

	sha512, err := h2f.Lookup(h2f.SHA2, 64)
	require.NoError(t, err)
	assert.Equal(t, 255*64, h2f.MaxExpansionLength(sha512))
	out, err := h2f.ExpandMessageXMD(sha512, dst, nil, 255*64)
	require.NoError(t, err)
	assert.Len(t, out, 255*64)
	_, err = h2f.ExpandMessageXMD(sha512, dst, nil, 255*64+1)
	require.ErrorIs(t, err, h2f.ErrExpansionTooLarge)
}

func TestExpandMessageXMDOversizeDST(t *testing.T) {
	h := sha256Hash(t)
	long := []byte(strings.Repeat("X", 300))

	got, err := h2f.ExpandMessageXMD(h, long, []byte("abc"), 48)
	require.NoError(t, err)

	// The long tag is replaced by its hash, so a 255-byte tag is used verbatim
	// and differs from the 300-byte one.
	other, err := h2f.ExpandMessageXMD(h, long[:255], []byte("abc"), 48)
	require.NoError(t, err)
	assert.NotEqual(t, got, other)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		family h2f.Family
		size   int
		ok     bool
		name   string
	}{
		{h2f.SHA2, 32, true, "SHA2-256"},
		{h2f.SHA2, 48, true, "SHA2-384"},
		{h2f.SHA2, 64, true, "SHA2-512"},
		{h2f.SHA3, 32, true, "SHA3-256"},
		{h2f.SHA3, 48, true, "SHA3-384"},
		{h2f.SHA3, 64, true, "SHA3-512"},
		{h2f.SHA2, 20, false, ""},
		{h2f.Family(7), 32, false, ""},
	}
	for _, tc := range tests {
		h, err := h2f.Lookup(tc.family, tc.size)
		if !tc.ok {
			require.ErrorIs(t, err, h2f.ErrInvalidParams)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.name, h.Name())
		assert.Equal(t, tc.size, h.New().Size())
	}
}
