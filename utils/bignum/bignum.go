// Package bignum provides arbitrary-precision helpers on top of
// math/big: convenience constructors, uniform sampling and the
// fixed-width little-endian codecs used to lay out operands for
// 32-bit hardware.
package bignum

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// NewInt allocates a new big.Int from an int, int64, uint, uint64,
// string or another *big.Int. The method panics if the input type is
// not one of the above.
func NewInt(x interface{}) (y *big.Int) {
	y = new(big.Int)
	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case string:
		if _, ok := y.SetString(x, 0); !ok {
			panic(fmt.Errorf("cannot parse %q as *big.Int", x))
		}
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid type %T for NewInt", x))
	}
	return
}

// RandInt samples a uniform integer in [0, max) from the provided
// reader. The method panics if the reader fails.
func RandInt(reader io.Reader, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(reader, max); err != nil {
		panic(fmt.Errorf("rand.Int: %w", err))
	}
	return
}
