package bignum

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwvectors/dsgen/utils/sampling"
)

func TestCodec(t *testing.T) {

	t.Run("BytesLE", func(t *testing.T) {

		x := NewInt("0x0102030405")

		buf, err := BytesLE(x, 8)
		require.NoError(t, err)
		require.Equal(t, []byte{0x05, 0x04, 0x03, 0x02, 0x01, 0x00, 0x00, 0x00}, buf)
	})

	t.Run("WordsLE", func(t *testing.T) {

		x := NewInt("0x00000001_89abcdef_01234567")

		words, err := WordsLE(x, 4)
		require.NoError(t, err)
		require.Equal(t, []uint32{0x01234567, 0x89abcdef, 0x00000001, 0x00000000}, words)
	})

	t.Run("Zero", func(t *testing.T) {

		buf, err := BytesLE(new(big.Int), 4)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 0, 0}, buf)

		require.Equal(t, 0, WordLen(new(big.Int)))
	})

	t.Run("Overflow", func(t *testing.T) {

		x := NewInt("0x010000000000000000") // 9 bytes

		_, err := BytesLE(x, 8)
		require.ErrorIs(t, err, ErrOverflow)

		_, err = WordsLE(x, 2)
		require.ErrorIs(t, err, ErrOverflow)

		// Exact fit is not an overflow.
		_, err = BytesLE(x, 9)
		require.NoError(t, err)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := BytesLE(NewInt(-1), 8)
		require.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("WordLen", func(t *testing.T) {
		require.Equal(t, 1, WordLen(NewInt(1)))
		require.Equal(t, 1, WordLen(NewInt(uint64(0xffffffff))))
		require.Equal(t, 2, WordLen(NewInt(uint64(0x100000000))))
		require.Equal(t, 4, WordLen(NewInt("0x01_00000000_00000000_00000001")))
	})

	t.Run("RoundTrip", func(t *testing.T) {

		prng, err := sampling.NewKeyedPRNG([]byte("codec"))
		require.NoError(t, err)

		max := new(big.Int).Lsh(NewInt(1), 512)

		for i := 0; i < 16; i++ {

			x := RandInt(prng, max)

			buf, err := BytesLE(x, 64)
			require.NoError(t, err)
			require.Equal(t, 0, x.Cmp(FromBytesLE(buf)))

			words, err := WordsLE(x, 16)
			require.NoError(t, err)
			require.Equal(t, 0, x.Cmp(FromWordsLE(words)))
		}
	})
}

func TestNewInt(t *testing.T) {

	require.Equal(t, 0, NewInt(42).Cmp(big.NewInt(42)))
	require.Equal(t, 0, NewInt(int64(-7)).Cmp(big.NewInt(-7)))
	require.Equal(t, 0, NewInt(uint64(1<<63)).Cmp(new(big.Int).Lsh(big.NewInt(1), 63)))
	require.Equal(t, 0, NewInt("255").Cmp(big.NewInt(255)))
	require.Equal(t, 0, NewInt("0xff").Cmp(big.NewInt(255)))

	require.Panics(t, func() { NewInt("not a number") })
	require.Panics(t, func() { NewInt(3.14) })
}

func TestRandInt(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("randint"))
	require.NoError(t, err)

	max := NewInt(1000)
	for i := 0; i < 100; i++ {
		x := RandInt(prng, max)
		require.True(t, x.Sign() >= 0)
		require.True(t, x.Cmp(max) < 0)
	}

	// Same seed, same draws.
	a, err := sampling.NewKeyedPRNG([]byte("replay"))
	require.NoError(t, err)
	b, err := sampling.NewKeyedPRNG([]byte("replay"))
	require.NoError(t, err)

	big512 := new(big.Int).Lsh(NewInt(1), 512)
	for i := 0; i < 8; i++ {
		require.Equal(t, 0, RandInt(a, big512).Cmp(RandInt(b, big512)))
	}

	require.Panics(t, func() { RandInt(errReader{}, max) })
}

type errReader struct{}

func (errReader) Read(p []byte) (int, error) {
	return 0, errors.New("broken source")
}
