package cvc_test

import (
	"bytes"
	"crypto/ecdh"
	"encoding/hex"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/curve"
)

const (
	orderHex  = "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"
	genHex    = "046b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
	negGenHex = "046b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296b01cbd1c01e58065711814b583f061e9d431cca994cea1313449bf97c840ae0a"
	twoGenHex = "047cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc4766997807775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func scalarBytes(v byte) []byte {
	b := make([]byte, 32)
	b[31] = v
	return b
}

// orderMinus returns n - k as 32 big-endian bytes.
func orderMinus(t *testing.T, k []byte) []byte {
	t.Helper()
	n := new(big.Int).SetBytes(mustHex(t, orderHex))
	return n.Sub(n, new(big.Int).SetBytes(k)).FillBytes(make([]byte, 32))
}

func randomKey(t *testing.T) cvc.KeyMaterial {
	t.Helper()
	km, err := cvc.GenerateSecretKey(nil)
	require.NoError(t, err)
	return km
}

// publicOf computes d·G with crypto/ecdh as an independent oracle.
func publicOf(t *testing.T, d []byte) []byte {
	t.Helper()
	priv, err := ecdh.P256().NewPrivateKey(d)
	require.NoError(t, err)
	return priv.PublicKey().Bytes()
}

func TestCombineSecretKeys(t *testing.T) {
	t.Run("one plus one", func(t *testing.T) {
		km, err := cvc.CombineSecretKeys(scalarBytes(1), scalarBytes(1))
		require.NoError(t, err)
		assert.Equal(t, scalarBytes(2), km.PrivateKeyBytes())
		assert.Equal(t, mustHex(t, twoGenHex), km.PublicKey())
	})

	t.Run("public key matches sum of public keys", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			a, b := randomKey(t), randomKey(t)
			km, err := cvc.CombineSecretKeys(a.PrivateKeyBytes(), b.PrivateKeyBytes())
			require.NoError(t, err)

			want, err := cvc.CombinePublicKeys(a.PublicKey(), b.PublicKey())
			require.NoError(t, err)
			assert.Equal(t, want, km.PublicKey())
			assert.Equal(t, publicOf(t, km.PrivateKeyBytes()), km.PublicKey())
		}
	})

	t.Run("commutative", func(t *testing.T) {
		a, b := randomKey(t), randomKey(t)
		ab, err := cvc.CombineSecretKeys(a.PrivateKeyBytes(), b.PrivateKeyBytes())
		require.NoError(t, err)
		ba, err := cvc.CombineSecretKeys(b.PrivateKeyBytes(), a.PrivateKeyBytes())
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("k plus n minus k is zero", func(t *testing.T) {
		k := randomKey(t).PrivateKeyBytes()
		km, err := cvc.CombineSecretKeys(k, orderMinus(t, k))
		require.ErrorIs(t, err, cvc.ErrResultZero)
		assert.True(t, cvc.IsArithmeticError(err))
		assert.False(t, km.Valid())
	})

	t.Run("wraps modulo order", func(t *testing.T) {
		km, err := cvc.CombineSecretKeys(orderMinus(t, scalarBytes(1)), scalarBytes(3))
		require.NoError(t, err)
		assert.Equal(t, scalarBytes(2), km.PrivateKeyBytes())
	})
}

func TestCombineSecretKeysRejectsInvalidKeys(t *testing.T) {
	valid := scalarBytes(5)
	tests := []struct {
		name     string
		key      []byte
		curveErr error
	}{
		{"zero", make([]byte, 32), curve.ErrZeroScalar},
		{"order", mustHex(t, orderHex), curve.ErrNotLessThanOrder},
		{"above order", bytes.Repeat([]byte{0xff}, 32), curve.ErrNotLessThanOrder},
		{"short", make([]byte, 31), curve.ErrBadLength},
		{"long", make([]byte, 33), curve.ErrBadLength},
		{"nil", nil, curve.ErrBadLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cvc.CombineSecretKeys(tc.key, valid)
			require.ErrorIs(t, err, cvc.ErrInvalidKey1)
			require.ErrorIs(t, err, tc.curveErr)
			assert.Equal(t, cvc.KindInvalidKey1, cvc.KindOf(err))

			_, err = cvc.CombineSecretKeys(valid, tc.key)
			require.ErrorIs(t, err, cvc.ErrInvalidKey2)
			require.ErrorIs(t, err, tc.curveErr)
			assert.True(t, cvc.IsValidationError(err))
			assert.True(t, cvc.IsKeyError(err))
		})
	}
}

func TestCombinePublicKeys(t *testing.T) {
	t.Run("G plus G", func(t *testing.T) {
		out, err := cvc.CombinePublicKeys(mustHex(t, genHex), mustHex(t, genHex))
		require.NoError(t, err)
		assert.Equal(t, mustHex(t, twoGenHex), out)
	})

	t.Run("commutes with scalar combination", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			a, b := randomKey(t), randomKey(t)
			sum, err := cvc.CombinePublicKeys(a.PublicKey(), b.PublicKey())
			require.NoError(t, err)
			rev, err := cvc.CombinePublicKeys(b.PublicKey(), a.PublicKey())
			require.NoError(t, err)
			assert.Equal(t, sum, rev)

			km, err := cvc.CombineSecretKeys(a.PrivateKeyBytes(), b.PrivateKeyBytes())
			require.NoError(t, err)
			assert.Equal(t, km.PublicKey(), sum)
		}
	})

	t.Run("G plus minus G is infinity", func(t *testing.T) {
		out, err := cvc.CombinePublicKeys(mustHex(t, genHex), mustHex(t, negGenHex))
		require.ErrorIs(t, err, cvc.ErrResultAtInfinity)
		assert.True(t, cvc.IsArithmeticError(err))
		assert.Nil(t, out)
	})
}

func TestCombinePublicKeysRejectsInvalidKeys(t *testing.T) {
	g := mustHex(t, genHex)

	offCurve := mustHex(t, genHex)
	offCurve[40] ^= 0x10
	compressedTag := mustHex(t, genHex)
	compressedTag[0] = 0x03
	infinity := make([]byte, 65)
	infinity[0] = 0x04

	tests := []struct {
		name  string
		key   []byte
		want1 error
		want2 error
	}{
		{"short", g[:64], cvc.ErrInvalidKey1Length, cvc.ErrInvalidKey2Length},
		{"compressed", g[:33], cvc.ErrInvalidKey1Length, cvc.ErrInvalidKey2Length},
		{"long", append(mustHex(t, genHex), 0), cvc.ErrInvalidKey1Length, cvc.ErrInvalidKey2Length},
		{"off curve", offCurve, cvc.ErrInvalidPoint1, cvc.ErrInvalidPoint2},
		{"wrong tag", compressedTag, cvc.ErrInvalidPoint1, cvc.ErrInvalidPoint2},
		{"infinity", infinity, cvc.ErrPoint1AtInfinity, cvc.ErrPoint2AtInfinity},
		{"all zero", make([]byte, 65), cvc.ErrPoint1AtInfinity, cvc.ErrPoint2AtInfinity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cvc.CombinePublicKeys(tc.key, g)
			require.ErrorIs(t, err, tc.want1)
			assert.True(t, cvc.IsValidationError(err))

			_, err = cvc.CombinePublicKeys(g, tc.key)
			require.ErrorIs(t, err, tc.want2)
			assert.True(t, cvc.IsKeyError(err))
		})
	}
}

func TestCombinePublicKeysInto(t *testing.T) {
	g := mustHex(t, genHex)

	dst := make([]byte, 80)
	n, err := cvc.CombinePublicKeysInto(dst, g, g)
	require.NoError(t, err)
	assert.Equal(t, 65, n)
	assert.Equal(t, mustHex(t, twoGenHex), dst[:n])

	small := bytes.Repeat([]byte{0xee}, 64)
	n, err = cvc.CombinePublicKeysInto(small, g, g)
	require.ErrorIs(t, err, cvc.ErrInsufficientBuffer)
	assert.True(t, cvc.IsCapacityError(err))
	assert.Zero(t, n)
	assert.Equal(t, bytes.Repeat([]byte{0xee}, 64), small)

	// Validation runs before the buffer check.
	_, err = cvc.CombinePublicKeysInto(small, g[:10], g)
	require.ErrorIs(t, err, cvc.ErrInvalidKey1Length)
}

func TestHashToField(t *testing.T) {
	u, err := cvc.HashToField(cvc.SHA2, 32, []byte("QUUX-V01-CS02-with-P256"), []byte("abc"), 2)
	require.NoError(t, err)
	require.Len(t, u, 2)
	assert.Equal(t, mustHex(t, "1766b6b59ccc39a0723ac254f0e04b44326b37cef6253ca1fe3221c1514be0c9"), u[0].Bytes())
	assert.Equal(t, mustHex(t, "70352ebad87ef7b9191242c1bdea3bf4939b5595fde4f29355394bb7450e6cbf"), u[1].Bytes())

	t.Run("varying inputs changes output", func(t *testing.T) {
		dst := []byte("CVC-TEST")
		base, err := cvc.HashToField(cvc.SHA2, 32, dst, []byte("m"), 2)
		require.NoError(t, err)

		otherMsg, err := cvc.HashToField(cvc.SHA2, 32, dst, []byte("n"), 2)
		require.NoError(t, err)
		assert.NotEqual(t, base, otherMsg)

		otherDST, err := cvc.HashToField(cvc.SHA2, 32, []byte("CVC-TEST2"), []byte("m"), 2)
		require.NoError(t, err)
		assert.NotEqual(t, base, otherDST)

		// The expansion length is bound into b_0, so count changes every element.
		three, err := cvc.HashToField(cvc.SHA2, 32, dst, []byte("m"), 3)
		require.NoError(t, err)
		assert.NotEqual(t, base[0], three[0])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := cvc.HashToField(cvc.SHA2, 32, []byte("d"), nil, 0)
		require.ErrorIs(t, err, cvc.ErrInvalidParams)
		assert.True(t, cvc.IsValidationError(err))

		_, err = cvc.HashToField(cvc.HashFamily(9), 32, []byte("d"), nil, 1)
		require.ErrorIs(t, err, cvc.ErrInvalidParams)

		_, err = cvc.HashToField(cvc.SHA2, 32, []byte("d"), nil, 1000)
		require.ErrorIs(t, err, cvc.ErrExpansionTooLarge)
		assert.True(t, cvc.IsCapacityError(err))
	})
}

func TestDeriveSecretKey(t *testing.T) {
	master := []byte("master-key-material")
	dst := []byte("CVC-DERIVE-TEST-DST-v1")

	t.Run("known answer", func(t *testing.T) {
		km, err := cvc.DeriveSecretKey(master, []byte("context-1"), dst)
		require.NoError(t, err)
		assert.Equal(t, mustHex(t, "dcee01c38b7781642958e3f171b7a0f2d1e3fbb909d09cb4a7dba3c23c4fff57"), km.PrivateKeyBytes())
		assert.Equal(t, mustHex(t, "dbb57dc8e1d7d3ab8624b00783c212ee9cd018bb202d2ffe5f6d6173cc4d813a"), km.PublicKeyXBytes())
		assert.Equal(t, mustHex(t, "0a6314487935c9d7e1e60064da1a08cf3812938220ea45260f13c30ebe99904d"), km.PublicKeyYBytes())
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := cvc.DeriveSecretKey(master, []byte("ctx"), dst)
		require.NoError(t, err)
		b, err := cvc.DeriveSecretKey(master, []byte("ctx"), dst)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("context separates keys", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 16; i++ {
			km, err := cvc.DeriveSecretKey(master, []byte{byte(i)}, dst)
			require.NoError(t, err)
			key := string(km.PrivateKeyBytes())
			assert.False(t, seen[key])
			seen[key] = true
		}
	})

	t.Run("public key round trips", func(t *testing.T) {
		km, err := cvc.DeriveSecretKey(master, []byte("round-trip"), dst)
		require.NoError(t, err)
		p, err := curve.NewPointFromCoordinates(km.PublicKeyXBytes(), km.PublicKeyYBytes())
		require.NoError(t, err)
		enc, err := p.Bytes()
		require.NoError(t, err)
		assert.Equal(t, publicOf(t, km.PrivateKeyBytes()), enc)
	})

	t.Run("oversize DST within limit", func(t *testing.T) {
		_, err := cvc.DeriveSecretKey(master, []byte("ctx"), bytes.Repeat([]byte("D"), 256))
		require.NoError(t, err)
	})
}

func TestDeriveSecretKeyRejectsInputs(t *testing.T) {
	dst := []byte("CVC-DERIVE-TEST-DST-v1")
	filled := func(n int) []byte { return bytes.Repeat([]byte{0x5a}, n) }

	tests := []struct {
		name    string
		master  []byte
		context []byte
		dst     []byte
		want    error
	}{
		{"empty master", nil, []byte("c"), dst, cvc.ErrInvalidParams},
		{"empty context", []byte("m"), nil, dst, cvc.ErrInvalidParams},
		{"empty dst", []byte("m"), []byte("c"), nil, cvc.ErrInvalidParams},
		{"master too large", filled(2049), []byte("c"), dst, cvc.ErrInputTooLarge},
		{"context too large", []byte("m"), filled(2049), dst, cvc.ErrInputTooLarge},
		{"dst too large", []byte("m"), []byte("c"), filled(257), cvc.ErrInputTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			km, err := cvc.DeriveSecretKey(tc.master, tc.context, tc.dst)
			require.ErrorIs(t, err, tc.want)
			assert.False(t, km.Valid())
		})
	}

	t.Run("limits are inclusive", func(t *testing.T) {
		_, err := cvc.DeriveSecretKey(filled(2048), filled(2048), dst)
		require.NoError(t, err)
	})

	t.Run("combined limit", func(t *testing.T) {
		cfg := cvc.DefaultConfig()
		cfg.MaxCombinedInputSize = 100
		_, err := cfg.DeriveSecretKey(filled(60), filled(41), dst)
		require.ErrorIs(t, err, cvc.ErrInputTooLarge)
		assert.True(t, cvc.IsCapacityError(err))

		_, err = cfg.DeriveSecretKey(filled(60), filled(40), dst)
		require.NoError(t, err)
	})
}

func TestDeriveSecretKeyHashSelection(t *testing.T) {
	master, ctx, dst := []byte("m"), []byte("c"), []byte("CVC-TEST")

	sha256Key, err := cvc.DeriveSecretKey(master, ctx, dst)
	require.NoError(t, err)

	cfg := cvc.DefaultConfig()
	cfg.HashFamily = cvc.SHA3
	sha3Key, err := cfg.DeriveSecretKey(master, ctx, dst)
	require.NoError(t, err)
	assert.NotEqual(t, sha256Key.PrivateKeyBytes(), sha3Key.PrivateKeyBytes())

	cfg.HashSize = 20
	_, err = cfg.DeriveSecretKey(master, ctx, dst)
	require.ErrorIs(t, err, cvc.ErrInvalidParams)
}

func TestGenerateSecretKey(t *testing.T) {
	km, err := cvc.GenerateSecretKey(nil)
	require.NoError(t, err)
	assert.True(t, cvc.IsKeyValid(km.PrivateKeyBytes()))
	assert.True(t, cvc.IsKeyValid(km.PublicKey()))
	assert.Equal(t, publicOf(t, km.PrivateKeyBytes()), km.PublicKey())

	_, err = cvc.GenerateSecretKey(strings.NewReader("short"))
	require.ErrorIs(t, err, cvc.ErrRandomFailed)
	assert.True(t, cvc.IsPrimitiveError(err))
	assert.False(t, cvc.IsValidationError(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestKeyMaterialFromCallResult(t *testing.T) {
	must := func(km cvc.KeyMaterial, err error) cvc.KeyMaterial {
		require.NoError(t, err)
		return km
	}
	pub := must(cvc.CombineSecretKeys(scalarBytes(1), scalarBytes(1))).PublicKey()
	assert.Equal(t, mustHex(t, twoGenHex), pub)
	assert.Equal(t, scalarBytes(2), must(cvc.CombineSecretKeys(scalarBytes(1), scalarBytes(1))).PrivateKeyBytes())
	assert.Len(t, randomKey(t).PrivateKeyBytes(), cvc.KeySize)
}

func TestIsKeyValid(t *testing.T) {
	assert.True(t, cvc.IsKeyValid(scalarBytes(1)))
	assert.True(t, cvc.IsKeyValid(mustHex(t, genHex)))
	assert.False(t, cvc.IsKeyValid(make([]byte, 32)))
	assert.False(t, cvc.IsKeyValid(mustHex(t, orderHex)))
	assert.False(t, cvc.IsKeyValid(make([]byte, 65)))
	assert.False(t, cvc.IsKeyValid(mustHex(t, genHex)[:33]))
	assert.False(t, cvc.IsKeyValid(nil))
}
