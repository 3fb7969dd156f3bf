package h2f

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The two-byte length field caps expansion once 255 blocks would exceed it.
func TestMaxExpansionLengthCap(t *testing.T) {
	wide := Hash{Family: SHA2, Size: 300, fn: sha256.New}
	assert.Equal(t, maxExpandLen, MaxExpansionLength(wide))

	_, err := ExpandMessageXMD(wide, []byte("DST"), nil, maxExpandLen+1)
	require.ErrorIs(t, err, ErrExpansionTooLarge)

	for _, size := range []int{32, 48, 64} {
		h, err := Lookup(SHA2, size)
		require.NoError(t, err)
		assert.Less(t, MaxExpansionLength(h), maxExpandLen)
	}
}
