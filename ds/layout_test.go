package ds

import (
	"bytes"
	"crypto/aes"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwvectors/dsgen/utils/bignum"
)

func TestLayoutSizes(t *testing.T) {
	require.Equal(t, 1560, DigestInputSize)
	require.Equal(t, 1584, PlaintextSize)
	require.Equal(t, 0, PlaintextSize%aes.BlockSize)
}

func TestDigestInput(t *testing.T) {

	km := testKey(t, 512)
	p := testMont(t, km)

	var iv [IVSize]byte
	for i := range iv {
		iv[i] = byte(i)
	}

	din, err := DigestInput(km, p, iv)
	require.NoError(t, err)
	require.Len(t, din, DigestInputSize)

	require.Equal(t, 0, bignum.FromBytesLE(din[:OperandBytes]).Cmp(km.Y))
	require.Equal(t, 0, bignum.FromBytesLE(din[OperandBytes:2*OperandBytes]).Cmp(km.M))
	require.Equal(t, 0, bignum.FromBytesLE(din[2*OperandBytes:3*OperandBytes]).Cmp(p.Rb))

	off := 3 * OperandBytes
	require.Equal(t, p.MPrime, binary.LittleEndian.Uint32(din[off:]))
	require.Equal(t, p.Length, binary.LittleEndian.Uint32(din[off+4:]))
	require.Equal(t, iv[:], din[off+8:])
}

func TestPlaintextBlock(t *testing.T) {

	km := testKey(t, 512)
	p := testMont(t, km)

	var iv [IVSize]byte

	block, err := PlaintextBlock(km, p, iv)
	require.NoError(t, err)
	require.Len(t, block, PlaintextSize)

	// A 512-bit operand occupies the first 64 bytes of its slot and
	// the remainder of the slot is zero padding.
	le, err := bignum.BytesLE(km.Y, 64)
	require.NoError(t, err)
	require.Equal(t, le, block[:64])
	require.Equal(t, make([]byte, OperandBytes-64), block[64:OperandBytes])

	require.Equal(t, 0, bignum.FromBytesLE(block[OperandBytes:2*OperandBytes]).Cmp(km.M))
	require.Equal(t, 0, bignum.FromBytesLE(block[2*OperandBytes:3*OperandBytes]).Cmp(p.Rb))

	din, err := DigestInput(km, p, iv)
	require.NoError(t, err)
	digest := sha256.Sum256(din)

	off := 3 * OperandBytes
	require.Equal(t, digest[:], block[off:off+DigestSize])

	off += DigestSize
	require.Equal(t, p.MPrime, binary.LittleEndian.Uint32(block[off:]))
	require.Equal(t, p.Length, binary.LittleEndian.Uint32(block[off+4:]))

	require.Equal(t, bytes.Repeat([]byte{PadByte}, PadSize), block[PlaintextSize-PadSize:])
}

func TestDigestBindsIV(t *testing.T) {

	km := testKey(t, 512)
	p := testMont(t, km)

	var a, b [IVSize]byte
	b[0] = 1

	blockA, err := PlaintextBlock(km, p, a)
	require.NoError(t, err)
	blockB, err := PlaintextBlock(km, p, b)
	require.NoError(t, err)

	// The IV is not part of the block, so the two blocks may only
	// differ in the digest region.
	off := 3 * OperandBytes
	require.Equal(t, blockA[:off], blockB[:off])
	require.NotEqual(t, blockA[off:off+DigestSize], blockB[off:off+DigestSize])
	require.Equal(t, blockA[off+DigestSize:], blockB[off+DigestSize:])
}

func TestLayoutOverflow(t *testing.T) {

	km := testKey(t, 512)
	p := testMont(t, km)

	var iv [IVSize]byte

	bad := km
	bad.Y = new(big.Int).Lsh(big.NewInt(1), MaxBits)

	_, err := DigestInput(bad, p, iv)
	require.ErrorIs(t, err, bignum.ErrOverflow)

	_, err = PlaintextBlock(bad, p, iv)
	require.ErrorIs(t, err, bignum.ErrOverflow)
}
