// Package mont derives the Montgomery multiplier constants consumed by
// 32-bit modular exponentiation hardware: the squared Montgomery radix
// Rb = 2^(2L) mod M, the negated modular inverse M' = -M^-1 mod 2^32
// and the operand length in words minus one.
package mont

import (
	"errors"
	"fmt"
	"math/big"
)

// WordBits is the radix of the multiplier datapath.
const WordBits = 32

// SupportedBits lists the operand sizes accepted by the accelerator.
var SupportedBits = []int{512, 1024, 2048, 3072, 4096}

// ErrEvenModulus is returned when the modulus is even, in which case no
// inverse modulo 2^32 exists.
var ErrEvenModulus = errors.New("modulus is even and has no inverse modulo 2^32")

// Params holds the precomputed constants for one modulus. Instances
// are created with NewParams and must not be modified afterwards.
type Params struct {
	// Rb is the squared Montgomery radix 2^(2L) mod M, where L is the
	// declared operand size in bits.
	Rb *big.Int
	// MPrime is -M^-1 mod 2^32.
	MPrime uint32
	// Length is the operand size in 32-bit words, minus one.
	Length uint32
}

// IsSupportedBits returns true if bits is one of SupportedBits.
func IsSupportedBits(bits int) bool {
	for _, b := range SupportedBits {
		if bits == b {
			return true
		}
	}
	return false
}

// NewParams derives the Montgomery constants for the odd modulus m at
// the declared operand size bits. The modulus may be shorter than the
// declared size but never longer.
func NewParams(m *big.Int, bits int) (Params, error) {

	switch {
	case m == nil || m.Sign() <= 0:
		return Params{}, fmt.Errorf("modulus must be a positive integer")
	case !IsSupportedBits(bits):
		return Params{}, fmt.Errorf("unsupported operand size %d: must be one of %v", bits, SupportedBits)
	case m.BitLen() > bits:
		return Params{}, fmt.Errorf("modulus of %d bits exceeds the declared %d-bit operand", m.BitLen(), bits)
	case m.Bit(0) == 0:
		return Params{}, ErrEvenModulus
	}

	lo := low32(m)
	mprime := -inverse32(lo)

	// M * M' must reduce to -1 modulo 2^32.
	if lo*mprime != 1<<32-1 {
		panic(fmt.Errorf("inconsistent M' for modulus with low word %#08x", lo))
	}

	rb := new(big.Int).Lsh(big.NewInt(1), uint(2*bits))
	rb.Mod(rb, m)

	return Params{
		Rb:     rb,
		MPrime: mprime,
		Length: uint32(bits/WordBits - 1),
	}, nil
}

// Bits returns the declared operand size in bits.
func (p Params) Bits() int {
	return (int(p.Length) + 1) * WordBits
}

// Equal returns true if both parameter sets are identical.
func (p Params) Equal(other Params) bool {
	return p.Rb != nil && other.Rb != nil &&
		p.Rb.Cmp(other.Rb) == 0 &&
		p.MPrime == other.MPrime &&
		p.Length == other.Length
}

var mask32 = big.NewInt(1<<32 - 1)

// low32 returns m mod 2^32.
func low32(m *big.Int) uint32 {
	return uint32(new(big.Int).And(m, mask32).Uint64())
}

// inverse32 computes n^-1 mod 2^32 for odd n. Each iteration doubles
// the number of correct low-order bits of the inverse.
func inverse32(n uint32) (inv uint32) {
	inv = 1
	x := n
	for i := 0; i < 31; i++ {
		inv *= x
		x *= x
	}
	return
}
