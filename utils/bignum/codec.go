package bignum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// ErrOverflow is returned when a value does not fit the width it is
// being encoded into.
var ErrOverflow = errors.New("operand exceeds its declared width")

// WordLen returns the number of 32-bit words needed to represent x,
// which is zero for a zero value.
func WordLen(x *big.Int) int {
	return (x.BitLen() + 31) >> 5
}

// BytesLE encodes x as exactly size little-endian bytes, padding the
// most significant positions with zeros. It returns an error wrapping
// ErrOverflow if x is negative or does not fit in size bytes.
func BytesLE(x *big.Int, size int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("cannot encode negative value: %w", ErrOverflow)
	}
	if n := (x.BitLen() + 7) >> 3; n > size {
		return nil, fmt.Errorf("value of %d bytes exceeds %d available: %w", n, size, ErrOverflow)
	}
	buf := x.FillBytes(make([]byte, size))
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf, nil
}

// WordsLE encodes x as exactly words little-endian 32-bit words. It
// returns an error wrapping ErrOverflow if x is negative or does not
// fit in words words.
func WordsLE(x *big.Int, words int) ([]uint32, error) {
	buf, err := BytesLE(x, words<<2)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, words)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i<<2:])
	}
	return out, nil
}

// FromBytesLE decodes a little-endian byte slice. Trailing zero bytes
// are ignored, so the width information is not recoverable.
func FromBytesLE(b []byte) *big.Int {
	buf := make([]byte, len(b))
	for i, v := range b {
		buf[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(buf)
}

// FromWordsLE decodes a little-endian 32-bit word slice.
func FromWordsLE(words []uint32) *big.Int {
	buf := make([]byte, len(words)<<2)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i<<2:], w)
	}
	return FromBytesLE(buf)
}
